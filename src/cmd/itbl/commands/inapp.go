package commands

import (
	"context"
	"fmt"

	"github.com/itblio/itbl/src/itbl"
	"github.com/spf13/cobra"
)

var (
	noSync    bool
	inboxOnly bool
)

// NewInAppCmd produces the inapp command and its subcommands
func NewInAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inapp",
		Short: "Fetch and inspect in-app messages",
	}

	cmd.PersistentFlags().BoolVar(&noSync, "no-sync", false, "Use stored messages without syncing first (requires --store)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List in-app messages",
		Args:  cobra.NoArgs,
		RunE:  listInApp,
	}
	list.Flags().BoolVar(&inboxOnly, "inbox", false, "Only list inbox messages")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "sync",
			Short: "Fetch in-app messages and print the response",
			Args:  cobra.NoArgs,
			RunE:  syncInApp,
		},
		list,
		&cobra.Command{
			Use:   "show <message-id>",
			Short: "Show a message and its parsed content",
			Args:  cobra.ExactArgs(1),
			RunE:  showInApp,
		},
		&cobra.Command{
			Use:   "click <message-id> <url>",
			Short: "Handle a click on a URL of a message",
			Args:  cobra.ExactArgs(2),
			RunE:  clickInApp,
		},
	)

	return cmd
}

func syncInApp(cmd *cobra.Command, args []string) error {
	sdk, err := newSDK(cmd)
	if err != nil {
		return err
	}
	defer sdk.Shutdown()

	res := newResult(cmd.OutOrStdout())
	sdk.SyncInApp(context.Background(), res.onSuccess(), res.onFailure())

	return res.err
}

// withMessages runs f on an SDK whose store holds the user's messages.
func withMessages(cmd *cobra.Command, f func(sdk *itbl.SDK, res *result) error) error {
	sdk, err := newSDK(cmd)
	if err != nil {
		return err
	}
	defer sdk.Shutdown()

	res := newResult(cmd.OutOrStdout())

	if !noSync {
		quiet := newResult(cmd.OutOrStdout())
		sdk.SyncInApp(context.Background(), nil, quiet.onFailure())
		if quiet.err != nil {
			return quiet.err
		}
	}

	if err := f(sdk, res); err != nil {
		return err
	}
	return res.err
}

func listInApp(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, func(sdk *itbl.SDK, res *result) error {
		messages := sdk.Messages()
		if inboxOnly {
			messages = sdk.InboxMessages()
		}

		for _, msg := range messages {
			fmt.Fprintf(res.out, "%s\tcampaign=%d\ttrigger=%s\tpriority=%v\tinbox=%v\tread=%v\n",
				msg.ID, msg.CampaignID, msg.Trigger, msg.Priority, msg.SaveToInbox, msg.Read)
		}
		return nil
	})
}

func showInApp(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, func(sdk *itbl.SDK, res *result) error {
		msg, err := sdk.Message(args[0])
		if err != nil {
			return err
		}

		content, err := msg.Parsed()
		if err != nil {
			return err
		}

		return printJSON(res.out, map[string]interface{}{
			"message":     msg,
			"contentType": content.Type().String(),
			"content":     content,
		})
	})
}

func clickInApp(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, func(sdk *itbl.SDK, res *result) error {
		click, err := sdk.HandleClick(context.Background(), args[0], args[1], nil, res.onFailure())
		if err != nil {
			return err
		}

		fmt.Fprintf(res.out, "%s click: %s\n", click.Kind, click.Name)
		return nil
	})
}
