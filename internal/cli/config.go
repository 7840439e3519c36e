package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Makepad-fr/todosphere/internal/config"
)

func (r *runner) configPath() (string, error) {
	if r.ConfigPath != "" {
		return r.ConfigPath, nil
	}
	return config.Path()
}

func (r *runner) doConfig(args []string) int {
	fset := newFlagSet("config", r.Stderr)
	force := fset.Bool("force", false, "overwrite an existing file")
	pos, err := parseArgs(fset, args)
	if err != nil {
		return ExitUsage
	}

	path, err := r.configPath()
	if err != nil {
		r.fail("config: " + err.Error())
		return ExitError
	}

	switch {
	case len(pos) == 0:
		fmt.Fprintln(r.Stdout, path)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			r.hint("no config file yet, defaults apply. Run `todo config init` to write one.")
		}
		return ExitOK
	case len(pos) == 1 && pos[0] == "init":
	default:
		return r.usage("config [init [-force]]")
	}

	if _, err := os.Stat(path); err == nil && !*force {
		r.fail(path + " already exists")
		r.hint("Hint: pass -force to overwrite it")
		return ExitError
	}
	if err := config.Default().Save(path); err != nil {
		r.fail("config: " + err.Error())
		return ExitError
	}
	r.ok("wrote " + path)
	return ExitOK
}
