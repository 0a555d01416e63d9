package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"medchat/internal/cli"
	"medchat/internal/config"
)

var askJSON bool

// askCmd classifies a single message
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Classify one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	r, err := loadResponder(config.Load())
	if err != nil {
		return err
	}

	resp := r.Classify(strings.Join(args, " "))

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	_, err = fmt.Fprint(out, cli.FormatReply(resp))
	return err
}
