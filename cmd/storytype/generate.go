package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/storytype/internal/passage"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Produce one passage with the configured sources and print it",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addPracticeFlags(cmd)
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, keyEnv, err := resolvePracticeConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	src, closeSrc, err := buildSource(ctx, cfg, st, os.Getenv(keyEnv))
	if err != nil {
		return err
	}
	defer closeSrc()

	text, err := src.RequestPassage(ctx, passage.Request{Words: cfg.Words, Difficulty: passage.Difficulty(cfg.Difficulty)})
	if err != nil {
		return fmt.Errorf("failed to produce passage: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
