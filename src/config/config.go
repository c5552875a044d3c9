package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"

	// DefaultConfigName is the name, without extension, of the optional
	// configuration file in DataDir.
	DefaultConfigName = "itbl"
)

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultEndpoint    = "https://api.iterable.com/api/"
	DefaultPlatform    = "Go"
	DefaultTimeout     = 60 * time.Second
	DefaultServiceAddr = "127.0.0.1:8000"
	DefaultStore       = false
	DefaultNoService   = true
	DefaultInAppCount  = 100
)

// Config contains all the configuration properties of an SDK instance.
type Config struct {
	// APIKey is the mobile API key sent with every request.
	APIKey string `mapstructure:"api-key"`

	// Endpoint is the base URL of the API. Request paths are resolved
	// below it; a missing trailing slash is added.
	Endpoint string `mapstructure:"endpoint"`

	// Email identifies the user. When both Email and UserID are set, Email
	// wins.
	Email string `mapstructure:"email"`

	// UserID identifies the user when no Email is set.
	UserID string `mapstructure:"user-id"`

	// Platform is reported in the SDK-Platform header and in-app requests.
	Platform string `mapstructure:"platform"`

	// Timeout bounds every API request.
	Timeout time.Duration `mapstructure:"timeout"`

	// DataDir is the top-level directory containing configuration and data.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, receives a JSON copy of every log line.
	LogFile string `mapstructure:"log-file"`

	// Store activates persistent storage of in-app messages.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db"`

	// NoService disables the local HTTP inspection service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the local HTTP service.
	ServiceAddr string `mapstructure:"service-listen"`

	// InAppCount is the maximum number of in-app messages requested per sync.
	InAppCount int `mapstructure:"inapp-count"`

	// ActionHandler receives the names of custom actions clicked in in-app
	// messages.
	ActionHandler callback.ActionBlock `mapstructure:"-"`

	// URLHandler receives regular URLs clicked in in-app messages.
	URLHandler callback.URLCallback `mapstructure:"-"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		Endpoint:    DefaultEndpoint,
		Platform:    DefaultPlatform,
		Timeout:     DefaultTimeout,
		DataDir:     DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		Store:       DefaultStore,
		DatabaseDir: DefaultDatabaseDir(),
		NoService:   DefaultNoService,
		ServiceAddr: DefaultServiceAddr,
		InAppCount:  DefaultInAppCount,
	}

	return config
}

// NewTestConfig returns a config object with default values and a logger that
// writes to the test log.
func NewTestConfig(t testing.TB) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t)
	return config
}

// SetDataDir sets the top-level directory, and updates the database directory
// if it is currently set to the default value. If the database directory is
// not currently the default, it means the user has explicitely set it to
// something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// SetLogger overrides the logger built from LogLevel and LogFile.
func (c *Config) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

// Logger returns a formatted logrus Entry, with prefix set to "itbl".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			c.logger.Hooks.Add(lfshook.NewHook(
				c.LogFile,
				&logrus.JSONFormatter{},
			))
		}
	}
	return c.logger.WithField("prefix", "itbl")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level config based
// on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "Itbl")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Itbl")
		} else {
			return filepath.Join(home, ".itbl")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level. Unknown names give the
// debug level.
func LogLevel(l string) logrus.Level {
	level, err := logrus.ParseLevel(l)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}
