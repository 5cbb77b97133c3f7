// Package main is the entry point for the pb CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/pb/internal/book"
	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/logging"
	"github.com/jacksmith/pb/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pb",
	Short: "pb - a terminal phone book",
	Long: `pb keeps an address book of contacts in a single JSON file.

Run without a subcommand to open the interactive menu. The subcommands
do the same things non-interactively, for scripts and quick lookups.

Settings come from .pbconfig.yaml in the current directory, then PB_*
environment variables (also read from .env), then flags.`,
	Version:       Version,
	Args:          cobra.NoArgs,
	RunE:          runMenu,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	flagDataFile string
	flagPageSize int
	flagLogLevel string
	flagNoColor  bool
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("pb version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagDataFile, "data", "", "contacts file (default data/contacts.json)")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", 0, "contacts per page (default 3)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level for stderr diagnostics (debug, info, warn, error, off)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			cli.SetColorEnabled(false)
		}
	}
}

// loadConfig resolves settings from .pbconfig.yaml, the environment and
// flags, in increasing order of precedence.
func loadConfig() (*storage.Config, error) {
	cfg, err := storage.LoadConfig(".")
	if err != nil {
		return nil, err
	}

	lookup, err := storage.EnvLookup(".")
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if flagDataFile != "" {
		cfg.DataFile = flagDataFile
	}
	if flagPageSize != 0 {
		cfg.PageSize = flagPageSize
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is what a command needs once settings are resolved.
type session struct {
	book *book.Book
	cfg  *storage.Config
	log  *zap.Logger
}

// openBook loads the configuration and the contact store it points at.
func openBook() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	s, err := storage.Open(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	log.Debug("opening contacts", zap.String("path", s.Path()))

	b, err := book.New(s, book.Options{Logger: log})
	if err != nil {
		return nil, err
	}
	return &session{book: b, cfg: cfg, log: log}, nil
}
