package cli

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/ui"
)

func (r *runner) doItems(args []string) int {
	if len(args) != 1 {
		return r.usage("ls <list>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}

	t := ui.Current()
	d, p := stats(l.Items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		t.Title.Render(l.Title),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(l.Items),
		t.Muted.Render("filter: "+r.Store.Preferences().Filter.String()),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(l.Progress(), 28)), ""}
	lines = append(lines, r.itemBlock(l)...)
	lines = append(lines, "", t.Muted.Render(fmt.Sprintf("Tip: add with `todo add %s \"Buy milk\"`", shortID(l.ID))))
	fmt.Fprintln(r.Stdout, ui.Panel(lines))
	return ExitOK
}

func (r *runner) doOpen(args []string) int {
	if len(args) != 1 {
		return r.usage("open <list>")
	}
	if r.Interactive == nil {
		r.fail("open: interactive mode is not available")
		return ExitError
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	if err := r.Interactive(r.Store, l.ID); err != nil {
		r.fail("tui: " + err.Error())
		return ExitError
	}
	return ExitOK
}

func (r *runner) doAdd(args []string) int {
	if len(args) < 2 {
		return r.usage("add <list> <text...>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	content := strings.TrimSpace(strings.Join(args[1:], " "))
	if content == "" {
		r.fail("add: empty item")
		return ExitUsage
	}
	r.Store.AddTodoItem(l.ID, content)
	r.ok("added")
	return ExitOK
}

func (r *runner) doToggle(args []string) int {
	if len(args) != 2 {
		return r.usage("done <list> <n>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	it, ok := r.itemArg(l, args[1])
	if !ok {
		return ExitUsage
	}
	r.Store.ToggleTodoItem(l.ID, it.ID)
	if it.Completed {
		r.ok("reopened")
	} else {
		r.ok("done")
	}
	return ExitOK
}

func (r *runner) doSetItem(args []string) int {
	if len(args) < 3 {
		return r.usage("set <list> <n> <text...>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	it, ok := r.itemArg(l, args[1])
	if !ok {
		return ExitUsage
	}
	content := strings.TrimSpace(strings.Join(args[2:], " "))
	if content == "" {
		r.fail("set: empty item")
		return ExitUsage
	}
	r.Store.UpdateTodoItem(l.ID, it.ID, content)
	r.ok("updated")
	return ExitOK
}

func (r *runner) doDeleteItem(args []string) int {
	if len(args) != 2 {
		return r.usage("del <list> <n>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	it, ok := r.itemArg(l, args[1])
	if !ok {
		return ExitUsage
	}
	r.Store.DeleteTodoItem(l.ID, it.ID)
	r.ok("removed")
	return ExitOK
}
