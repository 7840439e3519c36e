package cli

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/ui"
)

func stats(items []model.TodoItem) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// itemLines numbers items the way done/set/del expect them.
func itemLines(items []model.TodoItem) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := fmt.Sprintf("%2d.", i+1)
		box := t.Muted.Render(t.BoxUnchecked)
		text := ui.Truncate(it.Content, 80)
		if it.Completed {
			box = t.Success.Render(t.BoxChecked)
			text = t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, text))
	}
	return out
}

// groupLines splits items into pending and done sections. Numbers keep the
// position in the flat view so they stay valid for done/set/del.
func groupLines(items []model.TodoItem) []string {
	t := ui.Current()
	all := itemLines(items)
	if len(items) == 0 {
		return all
	}
	var pend, done []string
	for i, it := range items {
		if it.Completed {
			done = append(done, all[i])
		} else {
			pend = append(pend, all[i])
		}
	}
	none := t.Muted.Render("(none)")
	lines := []string{t.Accent.Render("Pending")}
	if len(pend) == 0 {
		pend = []string{none}
	}
	lines = append(lines, pend...)
	lines = append(lines, "", t.Accent.Render("Done"))
	if len(done) == 0 {
		done = []string{none}
	}
	return append(lines, done...)
}

func (r *runner) visibilityBadge(l model.TodoList) string {
	t := ui.Current()
	badge := t.Muted.Render("private")
	if l.IsPublic {
		badge = t.Accent.Render("public")
	}
	if n := len(l.SharedWith); n > 0 {
		badge += " " + t.Pending.Render(fmt.Sprintf("shared (%d)", n))
	}
	return badge
}

func (r *runner) dashboardLines(lists []model.TodoList) []string {
	t := ui.Current()
	prefs := r.Store.Preferences()
	lines := []string{
		t.Title.Render("Todo lists") + "  " + t.Muted.Render(fmt.Sprintf("%d of %d", len(lists), len(r.Store.Lists()))),
		t.Muted.Render(fmt.Sprintf("sort: %s · visibility: %s · search: %q", prefs.Sort, prefs.Visibility, prefs.SearchQuery)),
		"",
	}
	if len(lists) == 0 {
		msg := "no lists yet"
		if prefs.SearchQuery != "" {
			msg = fmt.Sprintf("no lists match %q", prefs.SearchQuery)
		}
		return append(lines, t.Muted.Render(msg))
	}
	for i, l := range lists {
		lines = append(lines, fmt.Sprintf("%s %s  %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), t.Title.Render(ui.Truncate(l.Title, 60)), r.visibilityBadge(l)))
		lines = append(lines, t.Muted.Render(fmt.Sprintf("    %d/%d completed · created %s · %s",
			l.CompletedCount(), len(l.Items), ui.Ago(l.CreatedAt, r.Now()), shortID(l.ID))))
	}
	return lines
}

func (r *runner) userNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, r.Directory.DisplayName(id))
	}
	return strings.Join(names, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
