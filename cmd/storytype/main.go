// Package main provides the CLI entrypoint for storytype.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/storytype/internal/config"
	"github.com/verte-zerg/storytype/internal/logging"
	"github.com/verte-zerg/storytype/internal/store"
)

const (
	defaultLang        = "en"
	defaultWords       = 100
	defaultDifficulty  = "Easy"
	defaultSource      = "auto"
	defaultAPIKeyEnv   = "GEMINI_API_KEY"
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
)

var logLevel string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storytype",
		Short:         "Terminal typing trainer with generated stories",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := logging.SetLevel(logLevel); err != nil {
				return err
			}
			loadEnv()
			return nil
		},
		RunE: runPracticeCmd,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPassagesCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStatsCmd())
	return rootCmd
}

// loadEnv reads .env files into the environment without overriding
// variables that are already set.
func loadEnv() {
	for _, path := range []string{".env", config.DefaultEnvPath()} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.Log.WithError(err).Warnf("failed to load %s", path)
		}
	}
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logging.Log.WithError(cerr).Error("failed to close db")
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# storytype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# words = %d                # Passage length: 100, 200, 400, 800 or 1500
# difficulty = %q        # Easy, Moderate or Hard
# source = %q            # auto, ai, library or local
# lang = %q                # Word list language for the local generator
# highlight = true          # Color correct and incorrect characters
# fold-line-breaks = false  # Treat line breaks like spaces
# focus-weak = false        # Bias the local generator toward weak characters
# weak-top = %d             # Number of weak characters to focus on
# weak-factor = %.1f        # Weight factor for weak characters
# weak-window = %d         # Number of recent sessions to compute weak chars

[ai]
# model = "gemini-1.5-flash"
# api-key-env = %q
`,
		defaultWords,
		defaultDifficulty,
		defaultSource,
		defaultLang,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultAPIKeyEnv,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
