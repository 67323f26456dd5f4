package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hollis-dev/aidtag/internal/config"
	"github.com/hollis-dev/aidtag/internal/logging"
	"github.com/hollis-dev/aidtag/internal/trainer"
)

// NewRootCommand builds the train_classifier command. It trains a
// multi-label disaster message classifier from a SQLite database and
// writes the model artifact to the given path.
func NewRootCommand() *cobra.Command {
	var configFilePath string
	var logLevel string
	var logFormat string

	cmd := &cobra.Command{
		Use:   "train_classifier <database_path> <model_output_path>",
		Short: "Train a multi-label disaster message classifier",
		Long: "Loads the cleaned disaster message corpus from a SQLite database, " +
			"grid-searches a tokenize/TF-IDF/boosted-ensemble pipeline with " +
			"cross-validation, reports per-category precision, recall, and F1 " +
			"on a held-out split, and saves the best model as JSON.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintln(cmd.OutOrStdout(),
					"Please provide the filepath of the disaster messages database "+
						"as the first argument and the filepath of the model to save "+
						"as the second argument.\n\n"+
						"Example: train_classifier disaster_response.db classifier.json")
				return cmd.Help()
			}

			cfg := config.NewDefault()
			if configFilePath != "" {
				loaded, err := config.TryLoadFromDisk(configFilePath)
				if err != nil {
					return fmt.Errorf("cli: load config: %w", err)
				}
				cfg = loaded
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			if errs := cfg.Validate(); len(errs) > 0 {
				return fmt.Errorf("cli: invalid configuration: %w", errors.Join(errs...))
			}

			if err := logging.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
				return fmt.Errorf("cli: init logging: %w", err)
			}
			defer logging.Sync()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-sigCh
				fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
				cancel()
			}()

			if err := trainer.New(cfg).Run(ctx, args[0], args[1]); err != nil {
				zap.S().Errorf("training failed: %s", err.Error())
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFilePath, "config", "c", "", "path to a YAML or JSON config file (defaults apply when unset)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "log format override (console or json)")
	return cmd
}
