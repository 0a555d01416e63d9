package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"medchat/internal/cli"
	"medchat/internal/config"
)

// chatCmd starts the interactive terminal chat
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadResponder(config.Load())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer stop()

		prompter := cli.NewLinerPrompter()
		defer prompter.Close()

		return cli.NewREPL(r, prompter, os.Stdout, nil, logger).Run(ctx)
	},
}
