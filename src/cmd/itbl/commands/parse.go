package commands

import (
	"fmt"
	"io/ioutil"

	"github.com/itblio/itbl/src/inapp"
	"github.com/spf13/cobra"
)

// NewParseCmd produces a ParseCmd which parses in-app content from a file
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse the JSON content payload of an in-app message",
		Args:  cobra.ExactArgs(1),
		RunE:  parseContent,
	}
	return cmd
}

func parseContent(cmd *cobra.Command, args []string) error {
	data, err := ioutil.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Reading %s: %s", args[0], err)
	}

	content, err := inapp.ParseJSON(data)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"contentType": content.Type().String(),
		"content":     content,
	})
}
