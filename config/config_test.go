package config

import (
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	opts := GetDefaultOptions()

	t.Logf(`Config
		Version: %s
		Host: %s
		Port: %d
		LogLevel: %s
		`, opts.Version, opts.Host, opts.Port, opts.LogLevel)

	if opts.Version != defaultVersion {
		t.Errorf("Version not set")
	}
	if opts.ReviewCreateLimit != defaultReviewCreateLimit {
		t.Errorf("ReviewCreateLimit not set")
	}
	if opts.ReviewMutateLimit != defaultReviewMutateLimit {
		t.Errorf("ReviewMutateLimit not set")
	}
	if opts.BcryptCost != defaultBcryptCost {
		t.Errorf("BcryptCost not set")
	}
}

func TestLoadConfigFile(t *testing.T) {
	opts, err := ParseFile("config_test.toml")
	if err != nil {
		t.Errorf("Error loading config: %s", err)
	}
	t.Logf(`Config
		Version: %s
		Host: %s
		Port: %d
		LogLevel: %s
		LogFile: %s
		`, opts.Version, opts.Host, opts.Port, opts.LogLevel, opts.LogFile)
	if opts.Version != "1.0.0" {
		t.Errorf("Version not set")
	}
	if opts.Host != "127.0.0.1" {
		t.Errorf("Host not set")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("LogFile not set")
	}
	if opts.Port != 2333 {
		t.Errorf("Port not set")
	}
	if opts.LogLevel != "DEBUG" {
		t.Errorf("LogLevel not set")
	}
	if opts.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret not set")
	}
	if opts.ReviewCreateLimit != 2 {
		t.Errorf("ReviewCreateLimit not set")
	}
}
