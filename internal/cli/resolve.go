package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/store"
)

var (
	errNoList    = errors.New("no list matches")
	errAmbiguous = errors.New("ambiguous list reference")
)

const minIDPrefix = 4

// resolveList turns a user reference into a list: exact id, dashboard number,
// unique id prefix, then unique title.
func (r *runner) resolveList(ref string) (model.TodoList, error) {
	ref = strings.TrimSpace(ref)
	if l, ok := r.Store.List(ref); ok {
		return l, nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		dash := r.Store.Dashboard()
		if n >= 1 && n <= len(dash) {
			return dash[n-1], nil
		}
	}

	var matches []model.TodoList
	if len(ref) >= minIDPrefix {
		for _, l := range r.Store.Lists() {
			if strings.HasPrefix(l.ID, ref) {
				matches = append(matches, l)
			}
		}
	}
	if len(matches) == 0 {
		for _, l := range r.Store.Lists() {
			if strings.EqualFold(l.Title, ref) {
				matches = append(matches, l)
			}
		}
	}

	switch len(matches) {
	case 0:
		return model.TodoList{}, fmt.Errorf("%w: %q", errNoList, ref)
	case 1:
		return matches[0], nil
	default:
		return model.TodoList{}, fmt.Errorf("%w: %q matches %d lists", errAmbiguous, ref, len(matches))
	}
}

// listArg resolves a list or reports the failure; ok is false when the
// command should stop with ExitUsage.
func (r *runner) listArg(ref string) (model.TodoList, bool) {
	l, err := r.resolveList(ref)
	if err != nil {
		r.fail(err.Error())
		r.hint("Hint: run `todo lists` to see list numbers")
		return model.TodoList{}, false
	}
	return l, true
}

// itemArg picks the n-th item (1-based) as shown by `ls` under the current filter.
func (r *runner) itemArg(l model.TodoList, arg string) (model.TodoItem, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		r.fail("not a number: " + arg)
		return model.TodoItem{}, false
	}
	visible := store.FilterItems(l.Items, r.Store.Preferences().Filter)
	if n < 1 || n > len(visible) {
		r.fail(fmt.Sprintf("index out of range: have %d, got %d", len(visible), n))
		r.hint("Hint: run `todo ls <list>` to see valid indexes")
		return model.TodoItem{}, false
	}
	return visible[n-1], true
}

// parseArgs parses flags that may appear before, between or after positionals.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

func filterNames() []string     { return model.FilterNames() }
func sortNames() []string       { return model.SortNames() }
func visibilityNames() []string { return model.VisibilityNames() }
