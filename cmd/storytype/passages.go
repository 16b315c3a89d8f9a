package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/storytype/internal/passage"
	"github.com/verte-zerg/storytype/internal/store"
)

var (
	passagesWords int
	passagesTitle string
)

func newPassagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passages",
		Short: "Manage the passage library",
	}
	cmd.PersistentFlags().IntVar(&passagesWords, "words", defaultWords, "length bucket (100, 200, 400, 800, 1500)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored passages for a length",
		Args:  cobra.NoArgs,
		RunE:  runPassagesList,
	}
	count := &cobra.Command{
		Use:   "count",
		Short: "Count stored passages for each length",
		Args:  cobra.NoArgs,
		RunE:  runPassagesCount,
	}
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored passage",
		Args:  cobra.ExactArgs(1),
		RunE:  runPassagesShow,
	}
	add := &cobra.Command{
		Use:   "add [file]",
		Short: "Add a passage from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPassagesAdd,
	}
	add.Flags().StringVar(&passagesTitle, "title", "", "title (default: first words)")
	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored passage",
		Args:  cobra.ExactArgs(1),
		RunE:  runPassagesRemove,
	}

	cmd.AddCommand(list, count, show, add, rm)
	return cmd
}

func checkWords() error {
	if !passage.ValidLength(passagesWords) {
		return fmt.Errorf("--words must be one of 100, 200, 400, 800, 1500")
	}
	return nil
}

func runPassagesList(cmd *cobra.Command, _ []string) error {
	if err := checkWords(); err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	items, err := st.ListByLength(context.Background(), passagesWords)
	if err != nil {
		return fmt.Errorf("failed to list passages: %w", err)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "No passages stored for %d words.\n", passagesWords)
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", item.ID, item.Title); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runPassagesCount(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	for _, n := range passage.Lengths {
		count, err := st.CountByLength(context.Background(), n)
		if err != nil {
			return fmt.Errorf("failed to count passages: %w", err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%5d words  %d\n", n, count); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runPassagesShow(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := st.FetchByID(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no passage with id %s", args[0])
		}
		return fmt.Errorf("failed to fetch passage: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d words)\n\n%s\n", p.Title, p.Words, p.Content)
	return err
}

func runPassagesAdd(cmd *cobra.Command, args []string) error {
	if err := checkWords(); err != nil {
		return err
	}
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open passage: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				_ = cerr
			}
		}()
		r = file
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read passage: %w", err)
	}
	text := passage.Clean(string(data))
	if text == "" {
		return fmt.Errorf("passage is empty")
	}
	title := strings.TrimSpace(passagesTitle)
	if title == "" {
		title = passage.Title(text)
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := st.InsertPassage(context.Background(), text, passagesWords, title)
	if err != nil {
		return fmt.Errorf("failed to store passage: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}

func runPassagesRemove(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ok, err := st.DeletePassage(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete passage: %w", err)
	}
	if !ok {
		return fmt.Errorf("no passage with id %s", args[0])
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return err
}
