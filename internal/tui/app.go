package tui

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/hanzinum/internal/batch"
	"github.com/f3rmion/hanzinum/internal/clipboard"
	"github.com/f3rmion/hanzinum/internal/numeral"
	"github.com/f3rmion/hanzinum/internal/tui/bigchar"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

const (
	maxHistory = 10

	// Outputs up to this many characters get a block-art banner.
	bannerMaxChars = 6
	bannerCols     = 8
	bannerRows     = 4
)

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// Entry is one accepted conversion.
type Entry struct {
	Input  string
	Output string
}

// Model is the interactive converter. Output follows the input as it is
// typed.
type Model struct {
	input  textinput.Model
	opts   numeral.Options
	banner *bigchar.Renderer
	logger *zap.Logger

	output  string
	err     error
	history []Entry

	copied  bool
	copyErr error

	width  int
	height int
}

// New creates the converter model. A nil logger discards log output.
func New(opts numeral.Options, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a number, e.g. 1234.56"
	ti.Focus()
	ti.CharLimit = 48
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		input:  ti,
		opts:   opts,
		banner: bigchar.New(nil),
		logger: logger,
	}
}

// WithBanner sets the renderer used for the block-art banner.
func (m Model) WithBanner(r *bigchar.Renderer) Model {
	if r != nil {
		m.banner = r
	}
	return m
}

// Output returns the rendering of the current input.
func (m Model) Output() string { return m.output }

// Err returns the error for the current input, if any.
func (m Model) Err() error { return m.err }

// Options returns the active rendering options.
func (m Model) Options() numeral.Options { return m.opts }

// History returns accepted conversions, newest first.
func (m Model) History() []Entry { return m.history }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.opts.Currency = !m.opts.Currency
			m.refresh()
			return m, nil
		case "ctrl+t":
			if m.opts.Script == numeral.Simplified {
				m.opts.Script = numeral.Traditional
			} else {
				m.opts.Script = numeral.Simplified
			}
			m.refresh()
			return m, nil
		case "ctrl+y":
			return m.copyOutput()
		case "enter":
			m.accept()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		m.copyErr = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *Model) refresh() {
	value := batch.Normalize(m.input.Value())
	if value == "" {
		m.output, m.err = "", nil
		return
	}
	m.output, m.err = numeral.RenderOptions(value, m.opts)
}

func (m *Model) accept() {
	if m.output == "" || m.err != nil {
		return
	}
	entry := Entry{Input: batch.Normalize(m.input.Value()), Output: m.output}
	m.history = append([]Entry{entry}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
	m.input.Reset()
	m.refresh()
}

func (m Model) copyOutput() (tea.Model, tea.Cmd) {
	text := m.output
	if text == "" && len(m.history) > 0 {
		text = m.history[0].Output
	}
	if text == "" {
		return m, nil
	}

	if err := clipboard.Write(text); err != nil {
		m.logger.Debug("clipboard write failed", zap.Error(err))
		m.copyErr = err
	} else {
		m.copied = true
	}
	return m, clearCopiedAfter(2 * time.Second)
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("  數字 hanzinum  "))
	b.WriteString("  ")
	b.WriteString(m.renderModes())
	b.WriteString("\n\n")

	b.WriteString(InputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.output != "":
		if art := m.renderBanner(); art != "" {
			b.WriteString("\n")
			b.WriteString(BannerStyle.Render(art))
		}
		b.WriteString(ResultStyle.Render(m.output))
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		b.WriteString(HistoryBoxStyle.Render(m.renderHistory()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.copied:
		b.WriteString(CopiedStyle.Render("Copied to clipboard"))
	case m.copyErr != nil:
		b.WriteString(ErrorStyle.Render(m.copyErr.Error()))
	default:
		b.WriteString(HelpStyle.Render("enter: keep • tab: currency • ctrl+t: script • ctrl+y: copy • esc: quit"))
	}

	return ContentStyle.Render(b.String())
}

func (m Model) renderModes() string {
	badge := func(label string, active bool) string {
		if active {
			return ModeActiveStyle.Render(label)
		}
		return ModeStyle.Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		badge("standard", !m.opts.Currency),
		badge("currency", m.opts.Currency),
		SubtitleStyle.Render(" │ "),
		badge("traditional", m.opts.Script != numeral.Simplified),
		badge("simplified", m.opts.Script == numeral.Simplified),
	)
}

func (m Model) renderBanner() string {
	if !m.banner.IsAvailable() || utf8.RuneCountInString(m.output) > bannerMaxChars {
		return ""
	}
	if m.width > 0 && utf8.RuneCountInString(m.output)*bannerCols > m.width-4 {
		return ""
	}
	return m.banner.RenderLine(m.output, bannerCols, bannerRows)
}

func (m Model) renderHistory() string {
	w := 0
	for _, e := range m.history {
		w = max(w, runewidth.StringWidth(e.Input))
	}

	lines := make([]string, len(m.history))
	for i, e := range m.history {
		lines[i] = HistoryInputStyle.Render(runewidth.FillRight(e.Input, w)) +
			"  " + HistoryOutputStyle.Render(e.Output)
	}
	return strings.Join(lines, "\n")
}
