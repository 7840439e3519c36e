package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todosphere/internal/logging"
	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/store"
)

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	s, err := store.New(context.Background(), store.NewMemory(), store.WithLogger(logging.Discard()))
	require.NoError(t, err)
	l := s.CreateList("Groceries", "", false)
	s.AddTodoItem(l.ID, "milk")
	s.AddTodoItem(l.ID, "eggs")
	return s, l.ID
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// send feeds messages through Update and returns the final model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	var tm tea.Model = m
	for _, msg := range msgs {
		tm, _ = tm.Update(msg)
	}
	out, ok := tm.(Model)
	require.True(t, ok)
	return out
}

func TestPagingKeysLeaveActionKeysFree(t *testing.T) {
	s, id := newStore(t)
	m, ok := New(s, id)
	require.True(t, ok)

	keys := m.list.KeyMap.NextPage.Keys()
	assert.NotContains(t, keys, "f")
	assert.NotContains(t, keys, "d")
	assert.Contains(t, keys, "pgdown")
}

func TestNewUnknownList(t *testing.T) {
	s, _ := newStore(t)
	_, ok := New(s, "missing")
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestNewSelectsList(t *testing.T) {
	s, id := newStore(t)
	s.Select("")

	m, ok := New(s, id)
	require.True(t, ok)
	assert.Len(t, m.list.Items(), 2)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, id, cur.ID)
}

func TestToggleWritesThrough(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	m = send(t, m, space)

	l, _ := s.List(id)
	assert.True(t, l.Items[0].Completed)
	it, _ := m.list.Items()[0].(listItem)
	assert.True(t, it.Done)
}

func TestAddItem(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	m = send(t, m, runes("a"), runes("bread"), enter)

	l, _ := s.List(id)
	require.Len(t, l.Items, 3)
	assert.Equal(t, "bread", l.Items[2].Content)
	assert.False(t, m.adding)
	assert.Len(t, m.list.Items(), 3)
}

func TestAddRejectsBlank(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	m = send(t, m, runes("a"), runes("   "), enter)

	assert.True(t, m.adding)
	assert.Equal(t, "Item cannot be empty", m.inputErr)
	l, _ := s.List(id)
	assert.Len(t, l.Items, 2)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
}

func TestEditItem(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyBackspace}, runes("lk!"), enter)

	l, _ := s.List(id)
	assert.Equal(t, "millk!", l.Items[0].Content)
	assert.False(t, m.editing)
}

func TestDeleteItem(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	m = send(t, m, runes("d"))

	l, _ := s.List(id)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "eggs", l.Items[0].Content)
	assert.Len(t, m.list.Items(), 1)
}

func TestFilterCycleUsesStorePreference(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)
	m = send(t, m, space) // milk done

	m = send(t, m, runes("f"))
	assert.Equal(t, model.FilterActive, s.Preferences().Filter)
	require.Len(t, m.list.Items(), 1)
	it, _ := m.list.Items()[0].(listItem)
	assert.Equal(t, "eggs", it.Text)

	m = send(t, m, runes("f"))
	assert.Equal(t, model.FilterCompleted, s.Preferences().Filter)
	it, _ = m.list.Items()[0].(listItem)
	assert.Equal(t, "milk", it.Text)
}

func TestTogglePublic(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	send(t, m, runes("p"))

	l, _ := s.List(id)
	assert.True(t, l.IsPublic)
}

func TestQuitClearsSelection(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestViewRendersTitle(t *testing.T) {
	s, id := newStore(t)
	m, _ := New(s, id)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Contains(t, m.View(), "Groceries")
}
