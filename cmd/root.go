package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/examportal/internal/config"
	"github.com/abhisek/examportal/internal/i18n"
	"github.com/abhisek/examportal/internal/logging"
	"github.com/abhisek/examportal/internal/store"
)

var (
	settings  *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "examportal",
	Short: "Timed multiple-choice exams in the terminal",
	Long:  "examportal: take timed multiple-choice exams, review graded results and track your progress.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides EXAMPORTAL_DB env var)")
	pf.String("config", "", "Path to a config file")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-file", "", "Log file path, or - for stderr (default: data dir)")
	pf.String("lang", "en", fmt.Sprintf("Message language (%s)", strings.Join(i18n.Languages(), ", ")))
	pf.String("user", "", "Sign in as this user")
	pf.String("catalog-dir", "", "Directory with extra exam JSON files")
	pf.String("provider", "", "LLM provider for practice questions (anthropic, openai, gemini, none)")
	pf.String("model", "", "LLM model name")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(examsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(certificatesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves the configuration and starts logging before any command
// runs.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	cfg, err := config.FromViper(config.ForCommand(cmd))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		logPath = filepath.Join(dir, "examportal.log")
	}
	closer, err := logging.Setup(cfg.LogLevel, logPath)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	settings = cfg
	logCloser = closer
	log.Debug().Str("command", cmd.Name()).Msg("starting")
	return nil
}

// resolveDBPath returns the database path using the db setting (flag or
// EXAMPORTAL_DB via viper), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
