// Package cli implements the bookpage command-line tool: offline reviews of
// provider records and management of the persisted reviewer preferences.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/listenupapp/bookpage/internal/config"
	"github.com/listenupapp/bookpage/internal/di/providers"
	"github.com/listenupapp/bookpage/internal/logger"
	"github.com/listenupapp/bookpage/internal/service"
)

type rootOptions struct {
	envFile  string
	dataPath string
	store    string
	logLevel string
	output   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bookpage",
		Short: "Reconcile book metadata from multiple providers",
		Long: `bookpage merges a primary catalog record with audiobook and alternate-edition
records, picks a value per field, and normalizes the category list.

Field defaults and category rules chosen here are stored in the same settings
store the review server uses.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return checkFormat(opts.output)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", ".env", "Path to .env file")
	pf.StringVar(&opts.dataPath, "data-path", "", "Base path for persisted settings")
	pf.StringVar(&opts.store, "store", "", "Settings store backend (sqlite, badger, memory)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVarP(&opts.output, "output", "o", formatJSON, "Output format (json, yaml)")

	cmd.AddCommand(newReviewCmd(opts))
	cmd.AddCommand(newDefaultsCmd(opts))
	cmd.AddCommand(newTagsCmd(opts))

	return cmd
}

// env is everything a subcommand needs once configuration is resolved.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *providers.SettingsStoreHandle
}

func (e *env) Close() error {
	if err := e.store.Shutdown(); err != nil {
		e.log.WithError(err).Warn("failed to close settings store")
		return err
	}
	return nil
}

func (e *env) settings() *service.SettingsService {
	return service.NewSettingsService(e.store, e.log.Logger)
}

// configArgs turns the persistent flags into config.Load arguments so the CLI
// layers flags, environment and .env exactly like the server does.
func (o *rootOptions) configArgs(extra ...string) []string {
	args := []string{"-env-file", o.envFile}
	for _, kv := range [][2]string{
		{"-data-path", o.dataPath},
		{"-store", o.store},
		{"-log-level", o.logLevel},
	} {
		if kv[1] != "" {
			args = append(args, kv[0], kv[1])
		}
	}
	return append(args, extra...)
}

func (o *rootOptions) open(cmd *cobra.Command, extra ...string) (*env, error) {
	cfg, err := config.Load(o.configArgs(extra...))
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Writer:      cmd.ErrOrStderr(),
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	})

	handle, err := providers.OpenSettingsStore(cfg, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}

	return &env{cfg: cfg, log: log, store: handle}, nil
}
