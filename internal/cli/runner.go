package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Makepad-fr/todosphere/internal/directory"
	"github.com/Makepad-fr/todosphere/internal/store"
	"github.com/Makepad-fr/todosphere/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carries the collaborators a command needs plus output tweaks from root flags.
type Options struct {
	Group bool // ls/show grouped by pending/done

	Store        *store.Store
	Directory    *directory.Directory
	ShareBaseURL string
	// ConfigPath overrides where `config` looks; empty means config.Path().
	ConfigPath string

	Stdout, Stderr io.Writer
	Now            func() time.Time

	// Clipboard copies text; nil disables `link --copy`.
	Clipboard func(string) error
	// Interactive opens the TUI for a list; nil disables `open`.
	Interactive func(s *store.Store, listID string) error
}

type runner struct {
	Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Directory == nil && opt.Store != nil {
		opt.Directory = directory.New(opt.Store.CurrentUser(), directory.DefaultCollaborators)
	}
	r := &runner{Options: opt}

	if len(args) == 0 {
		r.printHelp(r.Stderr)
		return ExitUsage
	}
	code := r.dispatch(args[0], args[1:])
	if code == ExitOK && r.Store != nil {
		if err := r.Store.Err(); err != nil {
			r.fail("save: " + err.Error())
			return ExitError
		}
	}
	return code
}

func (r *runner) dispatch(cmd string, a []string) int {
	switch cmd {
	case "help", "-h", "--help":
		r.printHelp(r.Stdout)
		return ExitOK

	// lists
	case "lists":
		return r.doLists()
	case "new":
		return r.doNew(a)
	case "show":
		return r.doShow(a)
	case "edit":
		return r.doEdit(a)
	case "rm":
		return r.doRemoveList(a)
	case "public", "private":
		return r.doVisibility(cmd, a)

	// items
	case "ls":
		return r.doItems(a)
	case "open":
		return r.doOpen(a)
	case "add":
		return r.doAdd(a)
	case "done":
		return r.doToggle(a)
	case "set":
		return r.doSetItem(a)
	case "del":
		return r.doDeleteItem(a)

	// sharing
	case "share":
		return r.doShare(a)
	case "unshare":
		return r.doUnshare(a)
	case "users":
		return r.doUsers(a)
	case "link":
		return r.doLink(a)

	// preferences
	case "filter":
		return r.doFilter(a)
	case "sort":
		return r.doSort(a)
	case "visibility":
		return r.doListVisibility(a)
	case "search":
		return r.doSearch(a)

	case "config":
		return r.doConfig(a)
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.Stderr)
	r.printHelp(r.Stderr)
	return ExitUsage
}

// PrintHelp writes the usage text to stdout.
func PrintHelp() { (&runner{}).printHelp(os.Stdout) }

func (r *runner) printHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - todo lists you can share

Usage:
  todo [-group] <subcommand> [args]

Lists:
  lists                              Show the dashboard (search, visibility, sort applied)
  new <title...> [-d text] [-public] Create a list and select it
  show <list>                        Show a list with its items
  edit <list> [-t title] [-d text]   Rename a list or change its description
  rm <list>                          Delete a list and its items
  public <list> | private <list>     Change who can open the list

Items:
  ls <list>                          List items (current filter applied)
  open <list>                        Interactive view
  add <list> <text...>               Add an item
  done <list> <n>                    Toggle item n
  set <list> <n> <text...>           Replace the text of item n
  del <list> <n>                     Delete item n

Sharing:
  share <list> <user>                Give a collaborator access (id, email or name)
  unshare <list> <user>              Revoke access
  users [query]                      Show people you can share with
  link <list> [-copy]                Print the public link

Preferences:
  filter [%s]
  sort [%s]
  visibility [%s]
  search [text...]                   Empty text clears the search

Config:
  config                             Print the config file path
  config init [-force]               Write a config file with the defaults

<list> is a dashboard number, an id (or unique prefix), or a title.

Examples:
  todo new Groceries -d "weekly shop"
  todo add 1 Buy milk
  todo done 1 2
  todo share Groceries jane@example.com
`, strings.Join(filterNames(), "|"), strings.Join(sortNames(), "|"), strings.Join(visibilityNames(), "|"))
}

// -------------- output helpers ----------------

func (r *runner) ok(msg string)   { ui.OK(r.Stdout, msg) }
func (r *runner) fail(msg string) { ui.Fail(r.Stderr, msg) }
func (r *runner) hint(msg string) { ui.Hint(r.Stderr, msg) }

func (r *runner) usage(msg string) int {
	r.fail("usage: todo " + msg)
	return ExitUsage
}
