package mobile

import (
	"time"

	"github.com/itblio/itbl/src/config"
)

// MobileConfig holds the settings a mobile application can change. Fields use
// types gomobile can bind.
type MobileConfig struct {
	Endpoint   string //API base URL
	Platform   string //reported platform, e.g. "iOS" or "Android"
	Timeout    int    //request timeout in milliseconds
	InAppCount int    //max in-app messages per sync
	StoreType  string //inmem or badger
	StorePath  string //directory containing the Store DB
	LogLevel   string //debug, info, warn, error
}

// NewMobileConfig ...
func NewMobileConfig(endpoint string,
	platform string,
	timeout int,
	inAppCount int,
	storeType string,
	storePath string,
	logLevel string) *MobileConfig {

	return &MobileConfig{
		Endpoint:   endpoint,
		Platform:   platform,
		Timeout:    timeout,
		InAppCount: inAppCount,
		StoreType:  storeType,
		StorePath:  storePath,
		LogLevel:   logLevel,
	}
}

// DefaultMobileConfig ...
func DefaultMobileConfig() *MobileConfig {
	return &MobileConfig{
		Endpoint:   config.DefaultEndpoint,
		Platform:   "Mobile",
		Timeout:    int(config.DefaultTimeout / time.Millisecond),
		InAppCount: config.DefaultInAppCount,
		StoreType:  "inmem",
		StorePath:  "",
		LogLevel:   config.DefaultLogLevel,
	}
}

func (c *MobileConfig) toConfig() *config.Config {
	conf := config.NewDefaultConfig()

	conf.Endpoint = c.Endpoint
	conf.Platform = c.Platform
	conf.Timeout = time.Duration(c.Timeout) * time.Millisecond
	conf.InAppCount = c.InAppCount
	conf.Store = c.StoreType == "badger"
	conf.DatabaseDir = c.StorePath
	conf.LogLevel = c.LogLevel
	conf.NoService = true

	conf.SetLogger(setLoggerLevel(config.LogLevel(c.LogLevel)))

	return conf
}
