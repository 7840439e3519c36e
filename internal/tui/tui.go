// Package tui is the interactive view of one list. Every keystroke that changes
// something goes straight to the store; the on-screen rows are rebuilt from the
// store afterwards, never edited in place.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/store"
	"github.com/Makepad-fr/todosphere/internal/ui"
)

// ErrListNotFound is returned by Run for an unknown list id.
var ErrListNotFound = errors.New("list not found")

// listItem adapts a TodoItem to bubbles/list.Item
type listItem struct {
	ID   string
	Text string
	Done bool
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// itemDelegate renders one item per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.Text
	if it.Done {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	filterKey = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "all/active/completed"))
	publicKey = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "public/private"))
)

type Model struct {
	store  *store.Store
	listID string
	list   list.Model

	// inline add/edit share one text input
	adding   bool
	editing  bool
	editID   string
	ti       textinput.Model
	inputErr string
}

// New builds the view for listID and makes it the store's active list.
func New(s *store.Store, listID string) (Model, bool) {
	s.Select(listID)
	if _, ok := s.Current(); !ok {
		return Model{}, false
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	// f and d belong to filter and delete here
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown")
	extra := func() []key.Binding {
		return []key.Binding{addKey, editKey, toggleKey, deleteKey, filterKey, publicKey}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{store: s, listID: listID, list: l, ti: ti}
	m.refresh()
	return m, true
}

// Run starts the program and clears the selection when the user leaves.
func Run(s *store.Store, listID string) error {
	m, ok := New(s, listID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrListNotFound, listID)
	}
	defer s.Select("")

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds rows and header from the store.
func (m *Model) refresh() tea.Cmd {
	cur, ok := m.store.Current()
	if !ok {
		return nil
	}
	visible, _ := m.store.VisibleItems(cur.ID)
	rows := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		rows = append(rows, listItem{ID: it.ID, Text: it.Content, Done: it.Completed})
	}

	t := ui.Current()
	done := cur.CompletedCount()
	vis := "private"
	if cur.IsPublic {
		vis = "public"
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d  [%s · %s]",
		cur.Title,
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), len(cur.Items)-done,
		t.Accent.Render("Total"), len(cur.Items),
		m.store.Preferences().Filter, vis,
	)
	return m.list.SetItems(rows)
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(size.Width-4, size.Height-6)
		return m, nil
	}
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "esc":
		if m.list.FilterState() == list.FilterApplied && km.String() == "esc" {
			break
		}
		m.store.Select("")
		return m, tea.Quit
	case " ":
		if it, ok := m.selected(); ok {
			m.store.ToggleTodoItem(m.listID, it.ID)
			return m, m.refresh()
		}
		return m, nil
	case "d":
		if it, ok := m.selected(); ok {
			m.store.DeleteTodoItem(m.listID, it.ID)
			return m, m.refresh()
		}
		return m, nil
	case "a":
		m.adding = true
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New item..."
		return m, m.ti.Focus()
	case "e":
		if it, ok := m.selected(); ok {
			m.editing = true
			m.editID = it.ID
			m.inputErr = ""
			m.ti.SetValue(it.Text)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit item..."
			return m, m.ti.Focus()
		}
		return m, nil
	case "f":
		m.store.SetFilter(m.store.Preferences().Filter.Next())
		return m, m.refresh()
	case "p":
		if cur, ok := m.store.Current(); ok {
			public := !cur.IsPublic
			m.store.UpdateList(m.listID, model.ListPatch{IsPublic: &public})
			return m, m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			content := strings.TrimSpace(m.ti.Value())
			if content == "" {
				m.inputErr = "Item cannot be empty"
				return m, nil
			}
			if m.adding {
				m.store.AddTodoItem(m.listID, content)
			} else {
				m.store.UpdateTodoItem(m.listID, m.editID, content)
			}
			m.closeInput()
			return m, m.refresh()
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding, m.editing = false, false
	m.editID, m.inputErr = "", ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding || m.editing {
		title := "Add item"
		if m.editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " " + ui.Current().Error.Render(m.inputErr)
		}
		content += "\n" + ui.Panel([]string{title, m.ti.View()})
	}
	if err := m.store.Err(); err != nil {
		content += "\n" + ui.Current().Error.Render("save failed: "+err.Error())
	}
	return ui.Panel([]string{content})
}
