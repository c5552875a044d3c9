package commands

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var syncInterval time.Duration

// NewServeCmd produces a ServeCmd which keeps in-app messages in sync and
// exposes them over HTTP
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Sync in-app messages periodically and serve them over HTTP",
		Args:    cobra.NoArgs,
		PreRunE: enableService,
		RunE:    serve,
	}

	cmd.Flags().StringP("service-listen", "s", _config.Itbl.ServiceAddr, "Listen IP:Port for HTTP service")
	cmd.Flags().DurationVar(&syncInterval, "sync-interval", time.Minute, "Time between syncs, 0 to sync once")

	return cmd
}

func enableService(cmd *cobra.Command, args []string) error {
	_config.Itbl.NoService = false
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	sdk, err := newSDK(cmd)
	if err != nil {
		return err
	}
	defer sdk.Shutdown()

	logger := sdk.Logger()

	go func() {
		for {
			res := newResult(cmd.OutOrStdout())
			sdk.SyncInApp(context.Background(), nil, res.onFailure())
			if res.err != nil {
				logger.WithError(res.err).Error("Sync failed")
			} else {
				logger.WithFields(logrus.Fields{
					"messages": len(sdk.Messages()),
				}).Info("Synced in-app messages")
			}

			if syncInterval <= 0 {
				return
			}
			time.Sleep(syncInterval)
		}
	}()

	return sdk.Service.Serve()
}
