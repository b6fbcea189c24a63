package config // import "github.com/bookverse/bookverse/config"

const (
	defaultLogFile            = "bookverse.log"
	defaultLogLevel           = "debug"
	defaultLogFileMaxSize     = 20
	defaultLogFileMaxBackups  = 3
	defaultLogFileMaxAge      = 28
	defaultLogCompress        = false
	defaultPort               = 8080
	defaultHost               = "0.0.0.0"
	defaultData               = "/var/opt/bookverse"
	defaultDSN                = defaultData + "/bookverse.db"
	defaultJWTSecret          = ""
	defaultWorkerPoolSize     = 4
	defaultBcryptCost         = 10
	defaultReviewCreateLimit  = 5
	defaultReviewMutateLimit  = 10
	defaultPromoteLimit       = 5
	defaultResetTokenLifetime = 60
	defaultVersion            = "0.2.1"
)

type Option struct {
	Key   string
	Value interface{}
}

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// JWTSecret signs access tokens. Generated and persisted on first
	// start when left empty.
	JWTSecret      string `mapstructure:"jwt_secret"`
	WorkerPoolSize int    `mapstructure:"worker_pool_size"`
	// BcryptCost is the cost used when hashing passwords
	BcryptCost int `mapstructure:"bcrypt_cost"`
	// ReviewCreateLimit is the number of review creations allowed per
	// client per minute
	ReviewCreateLimit int `mapstructure:"review_create_limit"`
	// ReviewMutateLimit is the number of review edits/deletes allowed per
	// client per minute
	ReviewMutateLimit int `mapstructure:"review_mutate_limit"`
	// PromoteLimit is the number of promote/demote attempts allowed per
	// client per minute
	PromoteLimit int `mapstructure:"promote_limit"`
	// ResetTokenLifetime is the lifetime of a password reset token, in minutes
	ResetTokenLifetime int `mapstructure:"reset_token_lifetime"`
	// Version is the version of the application
	Version string `mapstructure:"version"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:            defaultLogFile,
		LogLevel:           defaultLogLevel,
		LogFileMaxSize:     defaultLogFileMaxSize,
		LogFileMaxBackups:  defaultLogFileMaxBackups,
		LogFileMaxAge:      defaultLogFileMaxAge,
		LogCompress:        defaultLogCompress,
		DSN:                defaultDSN,
		Port:               defaultPort,
		Host:               defaultHost,
		Data:               defaultData,
		JWTSecret:          defaultJWTSecret,
		WorkerPoolSize:     defaultWorkerPoolSize,
		BcryptCost:         defaultBcryptCost,
		ReviewCreateLimit:  defaultReviewCreateLimit,
		ReviewMutateLimit:  defaultReviewMutateLimit,
		PromoteLimit:       defaultPromoteLimit,
		ResetTokenLifetime: defaultResetTokenLifetime,
		Version:            defaultVersion,
	}
	return Opts
}
