package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bookverse/bookverse/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Writing past MaxSize must roll the file over so the active log stays small.
func TestLogRotation(t *testing.T) {
	config.GetDefaultOptions()

	filename := filepath.Join(t.TempDir(), "bookverse.log")
	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     1, // days
	}
	defer rotationLog.Close()

	logger := newZap(rotationLog)
	defer logger.Sync()

	oneMegabyte := 1024 * 1024
	if _, err := rotationLog.Write(make([]byte, oneMegabyte)); err != nil {
		t.Fatalf("Failed to fill log file: %v", err)
	}
	logger.Info("post-rotation entry")

	fileInfo, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Size() > int64(oneMegabyte) {
		t.Fatalf("Active log file size %d exceeds rotation threshold %d", fileInfo.Size(), oneMegabyte)
	}
}
