package cli

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
)

func (r *runner) doFilter(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(r.Stdout, r.Store.Preferences().Filter)
		return ExitOK
	}
	f, err := model.ParseFilter(args[0])
	if err != nil || len(args) > 1 {
		return r.usage("filter [" + strings.Join(filterNames(), "|") + "]")
	}
	r.Store.SetFilter(f)
	r.ok("filter: " + f.String())
	return ExitOK
}

func (r *runner) doSort(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(r.Stdout, r.Store.Preferences().Sort)
		return ExitOK
	}
	s, err := model.ParseSort(args[0])
	if err != nil || len(args) > 1 {
		return r.usage("sort [" + strings.Join(sortNames(), "|") + "]")
	}
	r.Store.SetSort(s)
	r.ok("sort: " + s.String())
	return ExitOK
}

func (r *runner) doListVisibility(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(r.Stdout, r.Store.Preferences().Visibility)
		return ExitOK
	}
	v, err := model.ParseVisibility(args[0])
	if err != nil || len(args) > 1 {
		return r.usage("visibility [" + strings.Join(visibilityNames(), "|") + "]")
	}
	r.Store.SetVisibility(v)
	r.ok("visibility: " + v.String())
	return ExitOK
}

func (r *runner) doSearch(args []string) int {
	q := strings.TrimSpace(strings.Join(args, " "))
	r.Store.SetSearchQuery(q)
	if q == "" {
		r.ok("search cleared")
	} else {
		r.ok(fmt.Sprintf("search: %q", q))
	}
	return ExitOK
}
