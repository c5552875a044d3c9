package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/itblio/itbl/src/config"
	"github.com/itblio/itbl/src/itbl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	_config = NewDefaultCLIConfig()
	_viper  = viper.New()
)

// NewRootCmd returns the itbl command with all its subcommands. Each call
// starts from a fresh configuration.
func NewRootCmd() *cobra.Command {
	_config = NewDefaultCLIConfig()
	_viper = viper.New()

	rootCmd := &cobra.Command{
		Use:               "itbl",
		Short:             "Command line client for the Iterable API",
		TraverseChildren:  true,
		PersistentPreRunE: loadConfig,
	}

	AddRootFlags(rootCmd)

	rootCmd.AddCommand(
		VersionCmd,
		NewTrackCmd(),
		NewUpdateUserCmd(),
		NewInAppCmd(),
		NewParseCmd(),
		NewServeCmd(),
		NewDummyCmd())

	return rootCmd
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

// AddRootFlags adds the flags shared by every command
func AddRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("datadir", _config.Itbl.DataDir, "Top-level directory for configuration and data")
	cmd.PersistentFlags().String("log", _config.Itbl.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-file", _config.Itbl.LogFile, "Also write JSON logs to this file")

	// API
	cmd.PersistentFlags().StringP("api-key", "k", _config.Itbl.APIKey, "Mobile API key")
	cmd.PersistentFlags().String("endpoint", _config.Itbl.Endpoint, "API base URL")
	cmd.PersistentFlags().String("platform", _config.Itbl.Platform, "Platform reported to the API")
	cmd.PersistentFlags().DurationP("timeout", "t", _config.Itbl.Timeout, "Request timeout")

	// Identity
	cmd.PersistentFlags().StringP("email", "e", _config.Itbl.Email, "Email of the user")
	cmd.PersistentFlags().StringP("user-id", "u", _config.Itbl.UserID, "Id of the user, used when no email is set")

	// Store
	cmd.PersistentFlags().Bool("store", _config.Itbl.Store, "Keep in-app messages in badgerDB instead of in-mem")
	cmd.PersistentFlags().String("db", _config.Itbl.DatabaseDir, "Database directory")
	cmd.PersistentFlags().Int("inapp-count", _config.Itbl.InAppCount, "Max number of in-app messages per sync")

	// Output
	cmd.PersistentFlags().Bool("pretty", _config.Pretty, "Indent JSON output")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.Itbl.SetDataDir(_config.Itbl.DataDir)

	// the logger may have been built before the config file was read
	_config.Itbl.Logger().Logger.Level = config.LogLevel(_config.Itbl.LogLevel)

	logFields := logrus.Fields{
		"itbl.DataDir":    _config.Itbl.DataDir,
		"itbl.Endpoint":   _config.Itbl.Endpoint,
		"itbl.Platform":   _config.Itbl.Platform,
		"itbl.Timeout":    _config.Itbl.Timeout,
		"itbl.Email":      _config.Itbl.Email,
		"itbl.UserID":     _config.Itbl.UserID,
		"itbl.Store":      _config.Itbl.Store,
		"itbl.InAppCount": _config.Itbl.InAppCount,
		"itbl.LogLevel":   _config.Itbl.LogLevel,
	}

	if _config.Itbl.Store {
		logFields["itbl.DatabaseDir"] = _config.Itbl.DatabaseDir
	}

	_config.Itbl.Logger().WithFields(logFields).Debug(cmd.Name())

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := _viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// ITBL_API_KEY, ITBL_EMAIL, ...
	_viper.SetEnvPrefix("itbl")
	_viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_viper.AutomaticEnv()

	// first unmarshal to read from CLI flags
	if err := _viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/itbl.toml (.json, .yaml also work)
	_viper.SetConfigName(config.DefaultConfigName) // name of config file (without extension)
	_viper.AddConfigPath(_config.Itbl.DataDir)     // search root directory

	// If a config file is found, read it in.
	if err := _viper.ReadInConfig(); err == nil {
		_config.Itbl.Logger().Debugf("Using config file: %s", _viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Itbl.Logger().Debugf("No config file found in: %s", _config.Itbl.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return _viper.Unmarshal(_config)
}

// newSDK builds and initializes an SDK from the loaded configuration.
func newSDK(cmd *cobra.Command) (*itbl.SDK, error) {
	out := cmd.OutOrStdout()

	_config.Itbl.ActionHandler = func(name *string) {
		if name != nil {
			fmt.Fprintf(out, "action: %s\n", *name)
		}
	}
	_config.Itbl.URLHandler = func(u *url.URL) {
		if u != nil {
			fmt.Fprintf(out, "url: %s\n", u)
		}
	}

	sdk := itbl.NewSDK(&_config.Itbl)
	if err := sdk.Init(); err != nil {
		_config.Itbl.Logger().Error("Cannot initialize SDK: ", err)
		return nil, err
	}

	return sdk, nil
}
