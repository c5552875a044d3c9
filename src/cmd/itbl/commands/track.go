package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var mergeNested bool

// NewTrackCmd produces a TrackCmd which records a custom event
func NewTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track <event> [data-json]",
		Short: "Track a custom event",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  track,
	}
	return cmd
}

// NewUpdateUserCmd produces an UpdateUserCmd which sets profile fields
func NewUpdateUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-user <data-json>",
		Short: "Update the fields of the user profile",
		Args:  cobra.ExactArgs(1),
		RunE:  updateUser,
	}

	cmd.Flags().BoolVar(&mergeNested, "merge", false, "Merge nested objects instead of replacing them")

	return cmd
}

func track(cmd *cobra.Command, args []string) error {
	fields, err := decodeFieldsArg(args, 1)
	if err != nil {
		return err
	}

	sdk, err := newSDK(cmd)
	if err != nil {
		return err
	}
	defer sdk.Shutdown()

	res := newResult(cmd.OutOrStdout())
	sdk.Track(context.Background(), args[0], fields, res.onSuccess(), res.onFailure())

	return res.err
}

func updateUser(cmd *cobra.Command, args []string) error {
	fields, err := decodeFieldsArg(args, 0)
	if err != nil {
		return err
	}

	sdk, err := newSDK(cmd)
	if err != nil {
		return err
	}
	defer sdk.Shutdown()

	res := newResult(cmd.OutOrStdout())
	sdk.UpdateUser(context.Background(), fields, mergeNested, res.onSuccess(), res.onFailure())

	return res.err
}
