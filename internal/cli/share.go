package cli

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/todosphere/internal/model"
	"github.com/Makepad-fr/todosphere/internal/ui"
)

func (r *runner) doShare(args []string) int {
	if len(args) < 2 {
		return r.usage("share <list> <user>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	ref := strings.Join(args[1:], " ")
	u, found := r.Directory.Resolve(ref)
	if !found {
		r.fail(fmt.Sprintf("unknown user: %q", ref))
		r.hint("Hint: run `todo users` to see who you can share with")
		return ExitUsage
	}
	switch {
	case u.ID == l.OwnerID:
		r.fail(fmt.Sprintf("%s owns %q", u.Name, l.Title))
		return ExitUsage
	case l.IsSharedWith(u.ID):
		r.ok(fmt.Sprintf("already shared with %s", u.Name))
		return ExitOK
	}
	r.Store.ShareList(l.ID, u.ID)
	r.ok(fmt.Sprintf("shared %q with %s", l.Title, u.Name))
	return ExitOK
}

func (r *runner) doUnshare(args []string) int {
	if len(args) < 2 {
		return r.usage("unshare <list> <user>")
	}
	l, ok := r.listArg(args[0])
	if !ok {
		return ExitUsage
	}
	ref := strings.Join(args[1:], " ")
	// ids of users who left the directory can still be revoked
	u, found := r.Directory.Resolve(ref)
	if !found {
		u = model.User{ID: ref, Name: ref}
	}
	if !l.IsSharedWith(u.ID) {
		r.hint(fmt.Sprintf("%q is not shared with %s", l.Title, u.Name))
		return ExitOK
	}
	r.Store.RemoveSharedUser(l.ID, u.ID)
	r.ok(fmt.Sprintf("removed %s from %q", u.Name, l.Title))
	return ExitOK
}

func (r *runner) doUsers(args []string) int {
	t := ui.Current()
	query := strings.Join(args, " ")
	users := r.Directory.Search(query)
	lines := []string{t.Title.Render("People") + "  " + t.Muted.Render(fmt.Sprintf("you are %s", r.Directory.Current().Name)), ""}
	if len(users) == 0 {
		lines = append(lines, t.Muted.Render(fmt.Sprintf("no users found matching %q", query)))
	}
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("%s  %s  %s", t.Muted.Render(fmt.Sprintf("%-4s", u.ID)), u.Name, t.Muted.Render(u.Email)))
	}
	fmt.Fprintln(r.Stdout, ui.Panel(lines))
	return ExitOK
}

func (r *runner) doLink(args []string) int {
	fs := newFlagSet("link", r.Stderr)
	copyLink := fs.Bool("copy", false, "copy the link to the clipboard")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return ExitUsage
	}
	if len(pos) != 1 {
		return r.usage("link <list> [-copy]")
	}
	l, ok := r.listArg(pos[0])
	if !ok {
		return ExitUsage
	}

	link := model.ShareLink(r.ShareBaseURL, l.ID)
	fmt.Fprintln(r.Stdout, link)
	if !l.IsPublic {
		r.hint(fmt.Sprintf("%q is private: only you and collaborators can open it. Run `todo public %s` to share the link.", l.Title, shortID(l.ID)))
	}
	if *copyLink {
		if r.Clipboard == nil {
			r.fail("link: clipboard is not available")
			return ExitError
		}
		if err := r.Clipboard(link); err != nil {
			r.fail("copy: " + err.Error())
			return ExitError
		}
		r.ok("link copied to clipboard")
	}
	return ExitOK
}
