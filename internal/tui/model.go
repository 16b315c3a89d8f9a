// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/storytype/internal/logging"
	"github.com/verte-zerg/storytype/internal/model"
	"github.com/verte-zerg/storytype/internal/normalize"
	"github.com/verte-zerg/storytype/internal/passage"
	"github.com/verte-zerg/storytype/internal/session"
	statsPkg "github.com/verte-zerg/storytype/internal/stats"
	"github.com/verte-zerg/storytype/internal/timing"
	"github.com/verte-zerg/storytype/internal/viewport"
)

const fetchTimeout = 45 * time.Second

// Recorder persists finished sessions and reads history for the footer.
type Recorder interface {
	InsertSession(ctx context.Context, stats model.SessionStats, chars []model.CharStats) (int64, error)
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
}

type passageMsg struct {
	text string
	err  error
}

type tickMsg struct {
	tick timing.Tick
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config   model.Config
	source   passage.Source
	recorder Recorder
	clock    timing.Clock

	keys keyMap
	help help.Model

	width  int
	height int

	sess      *session.Session
	highlight bool
	loading   bool
	status    string

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM       float64
	allAcc       float64
	allCorrect   int
	allIncorrect int
	allDuration  int64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	typedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#BFBFBF"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pausedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// NewModel constructs a typing TUI model.
func NewModel(cfg model.Config, source passage.Source, recorder Recorder) *Model {
	m := &Model{
		config:    cfg,
		source:    source,
		recorder:  recorder,
		clock:     timing.SystemClock{},
		keys:      defaultKeyMap(),
		help:      help.New(),
		highlight: cfg.Highlight,
		loading:   true,
	}
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.fetchPassage()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	case passageMsg:
		m.loading = false
		text := msg.text
		m.status = ""
		if msg.err != nil || strings.TrimSpace(text) == "" {
			logging.Log.WithError(msg.err).Warn("passage sources failed; using fallback text")
			text = passage.FallbackText
			m.status = "offline passage"
		}
		m.loadPassage(text)
		return m, nil
	case tickMsg:
		if m.sess == nil || !m.sess.Tick(msg.tick) {
			return m, nil
		}
		return m, m.scheduleTick(msg.tick)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.sess != nil {
			m.sess.Close()
		}
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Next) {
		return m, m.nextPassage()
	}
	if m.sess == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Pause):
		return m, m.afterUpdate(m.sess.PauseToggle())
	case key.Matches(msg, m.keys.Restart):
		m.sess.Restart()
		return m, nil
	case key.Matches(msg, m.keys.Highlight):
		m.highlight = !m.highlight
		m.sess.SetHighlightMode(m.highlight)
		return m, nil
	case key.Matches(msg, m.keys.DeleteWord):
		return m, m.afterUpdate(m.sess.DeleteWord())
	case key.Matches(msg, m.keys.Backspace):
		return m, m.afterUpdate(m.sess.Backspace())
	}

	switch msg.Type {
	case tea.KeyEnter:
		if m.sess.Phase() == timing.Finished {
			return m, m.nextPassage()
		}
		return m, m.afterUpdate(m.sess.Type('\n'))
	case tea.KeyTab:
		return m, m.afterUpdate(m.sess.Type('\t'))
	case tea.KeySpace:
		return m, m.afterUpdate(m.sess.Type(' '))
	case tea.KeyRunes:
		var cmd tea.Cmd
		for _, r := range msg.Runes {
			if c := m.afterUpdate(m.sess.Type(r)); c != nil {
				cmd = c
			}
		}
		return m, cmd
	}
	return m, nil
}

// nextPassage closes the current session and requests a new passage. Keys
// other than quit are ignored until it arrives.
func (m *Model) nextPassage() tea.Cmd {
	if m.loading {
		return nil
	}
	if m.sess != nil {
		m.sess.Close()
		m.sess = nil
	}
	m.loading = true
	return m.fetchPassage()
}

func (m *Model) fetchPassage() tea.Cmd {
	src := m.source
	req := passage.Request{Words: m.config.Words, Difficulty: passage.Difficulty(m.config.Difficulty)}
	return func() tea.Msg {
		if src == nil {
			return passageMsg{err: passage.ErrEmpty}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		text, err := src.RequestPassage(ctx, req)
		return passageMsg{text: text, err: err}
	}
}

func (m *Model) loadPassage(text string) {
	if m.sess != nil {
		m.sess.Close()
	}
	m.sess = session.New(text, session.Options{
		Clock:     m.clock,
		Folder:    normalize.Folder{LineBreaks: m.config.FoldLineBreaks},
		Highlight: m.highlight,
	})
	m.sess.OnFinish(m.recordSession)
	m.layout()
}

func (m *Model) afterUpdate(u session.Update) tea.Cmd {
	if !u.Started {
		return nil
	}
	t, ok := m.sess.NextTick()
	if !ok {
		return nil
	}
	return m.scheduleTick(t)
}

func (m *Model) scheduleTick(t timing.Tick) tea.Cmd {
	return tea.Tick(m.sess.SampleInterval(), func(time.Time) tea.Msg {
		return tickMsg{tick: t}
	})
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * 0.70)
	if w < 2 {
		w = 2
	}
	return w
}

func (m *Model) bodyHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// layout remeasures the passage for the current terminal size. One column
// is left for a space hanging past the wrap point.
func (m *Model) layout() {
	if m.sess == nil || m.width == 0 || m.height == 0 {
		return
	}
	g := viewport.Measure(m.sess.Passage(), m.contentWidth()-1)
	m.sess.Resize(g, float64(m.bodyHeight()))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.sess == nil {
		msg := footerStyle.Render("Loading passage…")
		if m.width == 0 || m.height == 0 {
			return msg
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}
	snap := m.sess.Snapshot()
	runes := buildStyledRunes(m.sess.Passage(), snap.Verdicts, snap.Cursor, snap.Highlight)
	if m.width == 0 || m.height == 0 || !snap.ViewportOK {
		return renderStyledRunes(runes)
	}
	top := int(snap.Viewport.ScrollOffset)
	content := renderLines(runes, m.sess.Geometry(), top, m.bodyHeight(), m.contentWidth())
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) renderFooter() string {
	if m.sess == nil {
		return ""
	}
	snap := m.sess.Snapshot()
	progress := 0
	if snap.Length > 0 {
		progress = snap.Cursor * 100 / snap.Length
	}
	live := snap.Metrics
	segments := []string{
		fmt.Sprintf("%d WPM · %d CPM · %d%% acc · %d%% err", live.WPM, live.CPM, live.Accuracy, live.ErrorRate),
		formatElapsed(snap.Elapsed),
		fmt.Sprintf("Progress %d%%", progress),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	if m.status != "" {
		segments = append(segments, m.status)
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	switch snap.Phase {
	case timing.Paused:
		return pausedStyle.Render("PAUSED") + "  " + footer
	case timing.Finished:
		return pausedStyle.Render("DONE (enter for next)") + "  " + footer
	}
	return footer
}

func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func (m *Model) loadFooterStats() {
	if m.recorder == nil {
		return
	}
	sessions, err := m.recorder.ListSessions(context.Background(), model.StatsConfig{Words: m.config.Words})
	if err != nil {
		logging.Log.WithError(err).Error("failed to load session stats")
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM, _, m.lastAcc = statsPkg.SessionMetrics(last.Correct, last.Incorrect, last.DurationMs)
	m.hasLast = true
	for _, s := range sessions {
		m.allCorrect += s.Correct
		m.allIncorrect += s.Incorrect
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	wpm, _, acc := statsPkg.SessionMetrics(m.allCorrect, m.allIncorrect, m.allDuration)
	m.allWPM = wpm
	m.allAcc = acc
}

func (m *Model) recordSession(res session.Result) {
	stats := model.SessionStats{
		StartedAt:  res.StartedAt,
		EndedAt:    res.EndedAt,
		Words:      m.config.Words,
		Difficulty: m.config.Difficulty,
		Correct:    res.Correct,
		Incorrect:  res.Incorrect,
		DurationMs: res.Elapsed.Milliseconds(),
		PausedMs:   res.Paused.Milliseconds(),
	}
	chars := statsPkg.CharStatsFromVerdicts(res.Passage, res.Verdicts, res.Cursor)
	if m.recorder != nil {
		if _, err := m.recorder.InsertSession(context.Background(), stats, chars); err != nil {
			logging.Log.WithError(err).Error("failed to save session")
		}
	}
	logging.Log.WithFields(logrus.Fields{
		"wpm":      res.Metrics.WPM,
		"accuracy": res.Metrics.Accuracy,
		"elapsed":  res.Elapsed.String(),
	}).Info("session finished")

	m.lastWPM, _, m.lastAcc = statsPkg.SessionMetrics(stats.Correct, stats.Incorrect, stats.DurationMs)
	m.hasLast = true
	m.allCorrect += stats.Correct
	m.allIncorrect += stats.Incorrect
	m.allDuration += stats.DurationMs
	m.recomputeAllTime()
}
