package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/storytype/internal/ai"
	"github.com/verte-zerg/storytype/internal/config"
	"github.com/verte-zerg/storytype/internal/generator"
	"github.com/verte-zerg/storytype/internal/logging"
	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/passage"
	"github.com/verte-zerg/storytype/internal/stats"
	"github.com/verte-zerg/storytype/internal/store"
	"github.com/verte-zerg/storytype/internal/tui"
	"github.com/verte-zerg/storytype/internal/wordlist"
)

var (
	practiceWords      int
	practiceDifficulty string
	practiceSource     string
	practiceLang       string
	practiceHighlight  bool
	practiceFoldBreaks bool
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int
	practiceModel      string
)

func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&practiceWords, "words", defaultWords, "passage length in words (100, 200, 400, 800, 1500)")
	cmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "passage difficulty (Easy, Moderate, Hard)")
	cmd.Flags().StringVar(&practiceSource, "source", defaultSource, "passage source (auto, ai, library, local)")
	cmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "word list language for the local generator")
	cmd.Flags().BoolVar(&practiceHighlight, "highlight", true, "color correct and incorrect characters")
	cmd.Flags().BoolVar(&practiceFoldBreaks, "fold-line-breaks", false, "treat line breaks like spaces")
	cmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias the local generator toward weak characters")
	cmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	cmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	cmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")
	cmd.Flags().StringVar(&practiceModel, "model", ai.DefaultModel, "Gemini model name")
}

// resolvePracticeConfig merges the config file under explicitly set flags.
func resolvePracticeConfig(cmd *cobra.Command) (model.Config, string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	p := fileCfg.Practice
	applyIntConfig(cmd, "words", &practiceWords, p.Words)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, p.Difficulty)
	applyStringConfig(cmd, "source", &practiceSource, p.Source)
	applyStringConfig(cmd, "lang", &practiceLang, p.Lang)
	applyBoolConfig(cmd, "highlight", &practiceHighlight, p.Highlight)
	applyBoolConfig(cmd, "fold-line-breaks", &practiceFoldBreaks, p.FoldLineBreaks)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, p.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, p.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, p.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, p.WeakWindow)
	applyStringConfig(cmd, "model", &practiceModel, fileCfg.AI.Model)

	keyEnv := defaultAPIKeyEnv
	if fileCfg.AI.APIKeyEnv != nil && *fileCfg.AI.APIKeyEnv != "" {
		keyEnv = *fileCfg.AI.APIKeyEnv
	}

	cfg := model.Config{
		Words:          practiceWords,
		Difficulty:     practiceDifficulty,
		Source:         strings.ToLower(practiceSource),
		Lang:           practiceLang,
		Highlight:      practiceHighlight,
		FoldLineBreaks: practiceFoldBreaks,
		FocusWeak:      practiceFocusWeak,
		WeakTop:        practiceWeakTop,
		WeakFactor:     practiceWeakFactor,
		WeakWindow:     practiceWeakWindow,
		Model:          practiceModel,
	}
	if err := validateConfig(&cfg); err != nil {
		return model.Config{}, "", err
	}
	return cfg, keyEnv, nil
}

func validateConfig(cfg *model.Config) error {
	if !passage.ValidLength(cfg.Words) {
		return fmt.Errorf("--words must be one of 100, 200, 400, 800, 1500")
	}
	d, err := passage.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		return fmt.Errorf("--difficulty: %w", err)
	}
	cfg.Difficulty = string(d)
	switch cfg.Source {
	case "auto", "ai", "library", "local":
	default:
		return fmt.Errorf("--source must be one of auto, ai, library, local")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, keyEnv, err := resolvePracticeConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	src, closeSrc, err := buildSource(context.Background(), cfg, st, os.Getenv(keyEnv))
	if err != nil {
		return err
	}
	defer closeSrc()

	restore, err := logging.ToFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer restore()

	m := tui.NewModel(cfg, src, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildSource assembles the passage chain for cfg.Source. Generated
// passages are saved into the library.
func buildSource(ctx context.Context, cfg model.Config, st *store.Store, apiKey string) (passage.Source, func(), error) {
	closeFn := func() {}
	library := passage.Library{Store: st}

	var gemini passage.Source
	if cfg.Source == "auto" || cfg.Source == "ai" {
		if apiKey == "" {
			if cfg.Source == "ai" {
				return nil, nil, fmt.Errorf("no Gemini API key set (export %s or add it to %s)", defaultAPIKeyEnv, config.DefaultEnvPath())
			}
			logging.Log.Debug("no API key; AI passages disabled")
		} else {
			g, err := ai.NewGemini(ctx, apiKey, cfg.Model)
			if err != nil {
				return nil, nil, err
			}
			closeFn = func() {
				if cerr := g.Close(); cerr != nil {
					_ = cerr
				}
			}
			gemini = passage.Saving{
				Source: g,
				Store:  st,
				OnError: func(err error) {
					logging.Log.WithError(err).Warn("failed to save generated passage")
				},
			}
		}
	}

	var local passage.Source
	if cfg.Source == "auto" || cfg.Source == "local" {
		words, err := wordlist.LoadOrDefault(config.DefaultWordListPath(cfg.Lang), wordlist.FilterForLang(cfg.Lang))
		if err != nil {
			return nil, nil, err
		}
		gen := generator.Local{Words: words, Gen: generator.New()}
		if cfg.FocusWeak {
			gen.Factor = cfg.WeakFactor
			gen.Weak = func(ctx context.Context) (map[rune]struct{}, error) {
				aggs, err := st.GetWeakChars(ctx, cfg.WeakWindow)
				if err != nil {
					return nil, err
				}
				set := stats.SelectWeakChars(aggs, cfg.WeakTop)
				if len(set) == 0 {
					logging.Log.Info("no stats available for weak-char focus yet; using normal generator")
				}
				return set, nil
			}
		}
		local = gen
	}

	var chain passage.Chain
	switch cfg.Source {
	case "ai":
		chain = passage.Chain{gemini}
	case "library":
		chain = passage.Chain{library}
	case "local":
		chain = passage.Chain{local}
	default:
		if gemini != nil {
			chain = append(chain, gemini)
		}
		chain = append(chain, library, local)
	}
	return chain, closeFn, nil
}
