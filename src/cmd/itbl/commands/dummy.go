package commands

import (
	"fmt"
	"io/ioutil"

	"github.com/itblio/itbl/src/dummy"
	"github.com/spf13/cobra"
)

var (
	dummyAddr     string
	dummyMessages string
)

// NewDummyCmd produces a DummyCmd which runs an in-memory Iterable API
func NewDummyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dummy",
		Short: "Run an in-memory API for local development",
		Args:  cobra.NoArgs,
		RunE:  runDummy,
	}

	cmd.Flags().StringVar(&dummyAddr, "listen", "127.0.0.1:8090", "Listen IP:Port for the dummy API")
	cmd.Flags().StringVar(&dummyMessages, "messages", "", "JSON file with an inAppMessages array served to every user")

	return cmd
}

func runDummy(cmd *cobra.Command, args []string) error {
	logger := _config.Itbl.Logger().WithField("component", "dummy")

	state := dummy.NewState(logger)

	if dummyMessages != "" {
		data, err := ioutil.ReadFile(dummyMessages)
		if err != nil {
			return fmt.Errorf("Reading %s: %s", dummyMessages, err)
		}
		n, err := state.LoadMessages(data)
		if err != nil {
			return fmt.Errorf("Loading %s: %s", dummyMessages, err)
		}
		logger.WithField("messages", n).Info("Loaded in-app messages")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "endpoint: http://%s%s\n", dummyAddr, dummy.Prefix)

	return dummy.NewServer(_config.Itbl.APIKey, state, logger).Serve(dummyAddr)
}
