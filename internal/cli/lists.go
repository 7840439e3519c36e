package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/store"
	"github.com/Makepad-fr/todosphere/internal/ui"
)

func (r *runner) doLists() int {
	fmt.Fprintln(r.Stdout, ui.Panel(r.dashboardLines(r.Store.Dashboard())))
	return ExitOK
}

func (r *runner) doNew(args []string) int {
	fs := newFlagSet("new", r.Stderr)
	desc := fs.String("d", "", "description")
	public := fs.Bool("public", false, "anyone with the link can view the list")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return ExitUsage
	}
	title := strings.TrimSpace(strings.Join(pos, " "))
	if title == "" {
		r.fail("new: empty title")
		return ExitUsage
	}
	l := r.Store.CreateList(title, strings.TrimSpace(*desc), *public)
	r.ok(fmt.Sprintf("created %q (%s)", l.Title, shortID(l.ID)))
	return ExitOK
}

func (r *runner) doShow(args []string) int {
	if len(args) != 1 {
		return r.usage("show <list>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	r.Store.Select(l.ID)
	defer r.Store.Select("")
	cur, _ := r.Store.Current()

	t := ui.Current()
	done, pending := stats(cur.Items)
	lines := []string{
		fmt.Sprintf("%s  %s", t.Title.Render(cur.Title), r.visibilityBadge(cur)),
	}
	if cur.Description != "" {
		md, err := ui.Markdown(cur.Description, 72)
		if err != nil {
			md = cur.Description
		}
		lines = append(lines, md)
	}
	lines = append(lines,
		t.Muted.Render(fmt.Sprintf("owner: %s · created %s · id %s", r.Directory.DisplayName(cur.OwnerID), ui.Ago(cur.CreatedAt, r.Now()), cur.ID)),
	)
	if len(cur.SharedWith) > 0 {
		lines = append(lines, t.Muted.Render("shared with: "+r.userNames(cur.SharedWith)))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("%s %d  %s %d  %s %d",
			t.Success.Render(t.SymDone), done,
			t.Pending.Render(t.SymPending), pending,
			t.Accent.Render("Total"), len(cur.Items)),
		t.Muted.Render(ui.ProgressBar(cur.Progress(), 28)),
		"",
	)
	lines = append(lines, r.itemBlock(cur)...)
	fmt.Fprintln(r.Stdout, ui.Panel(lines))
	return ExitOK
}

func (r *runner) doEdit(args []string) int {
	fs := newFlagSet("edit", r.Stderr)
	title := fs.String("t", "", "new title")
	desc := fs.String("d", "", "new description")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return ExitUsage
	}
	if len(pos) != 1 {
		return r.usage("edit <list> [-t title] [-d text]")
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["t"] && !set["d"] {
		return r.usage("edit <list> [-t title] [-d text]")
	}

	l, ok := r.listArg(pos[0])
	if !ok {
		return ExitUsage
	}
	var patch model.ListPatch
	if set["t"] {
		v := strings.TrimSpace(*title)
		if v == "" {
			r.fail("edit: title cannot be empty")
			return ExitUsage
		}
		patch.Title = &v
	}
	if set["d"] {
		v := strings.TrimSpace(*desc)
		patch.Description = &v
	}
	r.Store.UpdateList(l.ID, patch)
	r.ok("updated")
	return ExitOK
}

func (r *runner) doRemoveList(args []string) int {
	if len(args) != 1 {
		return r.usage("rm <list>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	r.Store.DeleteList(l.ID)
	r.ok(fmt.Sprintf("deleted %q", l.Title))
	return ExitOK
}

func (r *runner) doVisibility(cmd string, args []string) int {
	if len(args) != 1 {
		return r.usage(cmd + " <list>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	public := cmd == "public"
	r.Store.UpdateList(l.ID, model.ListPatch{IsPublic: &public})
	r.ok(fmt.Sprintf("%q is now %s", l.Title, cmd))
	return ExitOK
}

// itemBlock renders the items of l under the current filter.
func (r *runner) itemBlock(l model.TodoList) []string {
	visible := store.FilterItems(l.Items, r.Store.Preferences().Filter)
	if r.Group {
		return groupLines(visible)
	}
	return itemLines(visible)
}
