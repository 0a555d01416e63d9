package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"medchat/internal/config"
	"medchat/internal/responder"
)

var (
	// Global flags
	verbose   bool
	tableFile string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "medchat",
	Short: "MedChat - keyword-based medical assistant",
	Long: `MedChat answers health questions with canned advice chosen by keyword.

It is not a diagnostic tool. Every reply carries a disclaimer and urgent
messages are pointed to emergency services.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&tableFile, "table", "", "YAML or TOML responder table (default: TABLE_FILE or built-in)")

	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the reply as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(keywordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadResponder builds the responder from --table, TABLE_FILE or the built-in
// table, in that order.
func loadResponder(cfg *config.Config) (*responder.Responder, error) {
	path := cfg.TableFile
	if tableFile != "" {
		path = tableFile
	}

	table, err := config.LoadTable(path)
	if err != nil {
		return nil, err
	}
	r, err := responder.New(table)
	if err != nil {
		return nil, fmt.Errorf("invalid responder table: %w", err)
	}
	if path != "" {
		logger.Info("loaded responder table", zap.String("path", path), zap.Int("keywords", len(r.Keywords())))
	}
	return r, nil
}
