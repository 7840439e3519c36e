package model

import (
	"fmt"
	"strings"
)

// Filter selects items by completion status.
type Filter uint8

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Sort orders lists on the dashboard.
type Sort uint8

const (
	SortNewest Sort = iota
	SortOldest
	SortAlphabetical
)

// Visibility narrows the dashboard by sharing state.
type Visibility uint8

const (
	VisibilityAll Visibility = iota
	VisibilityPrivate
	VisibilityPublic
	VisibilityShared
)

var (
	filterNames     = []string{"all", "active", "completed"}
	sortNames       = []string{"newest", "oldest", "alphabetical"}
	visibilityNames = []string{"all", "private", "public", "shared"}
)

// Preferences are the UI-facing settings persisted with the lists.
// The zero value holds the defaults: all items, newest first, every list, no search.
type Preferences struct {
	Filter      Filter     `json:"filter"`
	Sort        Sort       `json:"sort"`
	Visibility  Visibility `json:"visibility"`
	SearchQuery string     `json:"searchQuery"`
}

func lookup(kind string, names []string, s string) (int, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidOption, kind, s, strings.Join(names, ", "))
}

func name(kind string, names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, i)
	}
	return names[i]
}

// ---- Filter ----

func ParseFilter(s string) (Filter, error) {
	i, err := lookup("filter", filterNames, s)
	return Filter(i), err
}

func (f Filter) String() string { return name("filter", filterNames, int(f)) }

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter { return Filter((int(f) + 1) % len(filterNames)) }

func (f Filter) MarshalText() ([]byte, error) {
	if int(f) >= len(filterNames) {
		return nil, fmt.Errorf("%w: filter %d", ErrInvalidOption, f)
	}
	return []byte(f.String()), nil
}

func (f *Filter) UnmarshalText(b []byte) error {
	v, err := ParseFilter(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ---- Sort ----

func ParseSort(s string) (Sort, error) {
	i, err := lookup("sort", sortNames, s)
	return Sort(i), err
}

func (s Sort) String() string { return name("sort", sortNames, int(s)) }

func (s Sort) MarshalText() ([]byte, error) {
	if int(s) >= len(sortNames) {
		return nil, fmt.Errorf("%w: sort %d", ErrInvalidOption, s)
	}
	return []byte(s.String()), nil
}

func (s *Sort) UnmarshalText(b []byte) error {
	v, err := ParseSort(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ---- Visibility ----

func ParseVisibility(s string) (Visibility, error) {
	i, err := lookup("visibility", visibilityNames, s)
	return Visibility(i), err
}

func (v Visibility) String() string { return name("visibility", visibilityNames, int(v)) }

func (v Visibility) MarshalText() ([]byte, error) {
	if int(v) >= len(visibilityNames) {
		return nil, fmt.Errorf("%w: visibility %d", ErrInvalidOption, v)
	}
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(b []byte) error {
	p, err := ParseVisibility(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// FilterNames, SortNames and VisibilityNames list the accepted spellings, for help text.
func FilterNames() []string     { return append([]string(nil), filterNames...) }
func SortNames() []string       { return append([]string(nil), sortNames...) }
func VisibilityNames() []string { return append([]string(nil), visibilityNames...) }
