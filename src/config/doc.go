// Package config defines the configuration of an SDK instance.
//
// Whether the SDK is embedded in Go code, bound to a mobile application or
// driven from the itbl command line, it uses the Config object defined in
// this package. The command line additionally looks for an optional
// configuration file in Config.DataDir:
//
//	itbl.toml // (or .json, .yaml) overrides for any of the mapstructure keys.
//	badger_db // the in-app message database when Store is enabled.
package config
