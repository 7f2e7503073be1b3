package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/hanzinum/internal/clipboard"
	"github.com/f3rmion/hanzinum/internal/numeral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLiveRender(t *testing.T) {
	t.Parallel()

	m := send(t, New(numeral.Options{}, nil), typeText("2014"))
	assert.Equal(t, "兩千零一十四", m.Output())
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "兩千零一十四")
}

func TestFullWidthInput(t *testing.T) {
	t.Parallel()

	m := send(t, New(numeral.Options{}, nil), typeText("１０"))
	assert.Equal(t, "十", m.Output())
}

func TestToggleModes(t *testing.T) {
	t.Parallel()

	m := send(t, New(numeral.Options{}, nil), typeText("2014"))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.Options().Currency)
	assert.Equal(t, "貳仟零壹拾肆元整", m.Output())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, numeral.Simplified, m.Options().Script)
	assert.Equal(t, "贰仟零壹拾肆元整", m.Output())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, numeral.Options{}, m.Options())
	assert.Equal(t, "兩千零一十四", m.Output())
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	m := send(t, New(numeral.Options{}, nil), typeText("12a"))
	assert.Empty(t, m.Output())
	assert.ErrorIs(t, m.Err(), numeral.ErrFormat)
	assert.Contains(t, m.View(), "not a decimal numeral")

	// Enter ignores invalid input.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.History())
}

func TestHistory(t *testing.T) {
	t.Parallel()

	m := New(numeral.Options{}, nil)
	for _, n := range []string{"1", "2", "3"} {
		m = send(t, m, typeText(n), tea.KeyMsg{Type: tea.KeyEnter})
	}

	assert.Equal(t, []Entry{
		{Input: "3", Output: "三"},
		{Input: "2", Output: "二"},
		{Input: "1", Output: "一"},
	}, m.History())
	assert.Empty(t, m.Output())

	for i := 0; i < maxHistory; i++ {
		m = send(t, m, typeText("9"), tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.Len(t, m.History(), maxHistory)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := New(numeral.Options{}, nil).Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestCopyWithoutClipboard(t *testing.T) {
	t.Parallel()

	if clipboard.Available() {
		t.Skip("clipboard backend present; not touching the user's clipboard")
	}

	m := send(t, New(numeral.Options{}, nil), typeText("5"))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.ErrorIs(t, m.copyErr, clipboard.ErrUnavailable)
	assert.Contains(t, m.View(), "clipboard not available")

	m = send(t, m, clearCopiedMsg{})
	assert.NoError(t, m.copyErr)
	assert.NotContains(t, m.View(), "clipboard not available")
}

func TestCopyNothing(t *testing.T) {
	t.Parallel()

	_, cmd := New(numeral.Options{}, nil).Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
}

func TestWindowSize(t *testing.T) {
	t.Parallel()

	m := send(t, New(numeral.Options{}, nil), tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
}
