package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"medchat/internal/config"
)

// keywordsCmd prints the keyword table in match order
var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List keywords in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResponder(config.Load())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, k := range r.Keywords() {
			fmt.Fprintf(out, "%2d. %s\n", i+1, k)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Emergency phrases (checked when no keyword matches):")
		for _, p := range r.EmergencyPhrases() {
			fmt.Fprintf(out, "    %s\n", p)
		}
		return nil
	},
}
