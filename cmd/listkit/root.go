package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/listkit/internal/app"
	"github.com/dshills/listkit/internal/config/loader"
)

// errCancelled is returned when the user quits without choosing.
var errCancelled = errors.New("cancelled")

// flags holds the options shared by every command that shows a list.
type flags struct {
	configPath string
	scriptPath string
	feedPath   string
	sets       []string
	format     string
	multi      bool
	wrap       bool
	watch      bool
}

func newRootCmd() *cobra.Command {
	root, _ := newRootCmdWithFlags()
	return root
}

func newRootCmdWithFlags() (*cobra.Command, *flags) {
	f := &flags{}
	root := &cobra.Command{
		Use:   "listkit [items...]",
		Short: "Choose items from a list in the terminal",
		Long: `listkit shows a selectable list and prints what you choose.

Items come from arguments, a JSON feed (--items, "-" for stdin) or a Lua
script (--script). Enter chooses the focused item; in multi-select mode
Space toggles items first. Esc or q quits without choosing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChoose(cmd, args, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "configuration file (.toml, .yaml)")
	pf.StringVarP(&f.scriptPath, "script", "s", "", "Lua script providing items and hooks")
	pf.StringVarP(&f.feedPath, "items", "i", "", `JSON item feed file, or "-" for stdin`)
	pf.StringArrayVar(&f.sets, "set", nil, "override a setting, e.g. --set list.wrapFocus=true")
	pf.StringVar(&f.format, "format", formatAuto, "output format: auto, lines or json")
	pf.BoolVarP(&f.multi, "multi", "m", false, "allow choosing several items")
	pf.BoolVarP(&f.wrap, "wrap", "w", false, "wrap focus at the ends of the list")
	pf.BoolVar(&f.watch, "watch", false, "reload the configuration file when it changes")

	root.AddCommand(newChooseCmd(f), newTeaCmd(f), newVersionCmd())
	return root, f
}

// options converts flags and positional labels to application options.
// --multi and --wrap only override the configuration when given.
func (f *flags) options(cmd *cobra.Command, labels []string, stdin io.Reader) (app.Options, error) {
	overrides := make(map[string]any)
	for _, s := range f.sets {
		path, value, ok := strings.Cut(s, "=")
		if !ok || path == "" {
			return app.Options{}, fmt.Errorf("invalid --set %q: want path=value", s)
		}
		overrides[path] = loader.ParseValue(value)
	}
	if cmd.Flags().Changed("multi") {
		overrides["list.multi"] = f.multi
	}
	if cmd.Flags().Changed("wrap") {
		overrides["list.wrapFocus"] = f.wrap
	}

	switch f.format {
	case formatAuto, formatLines, formatJSON:
	default:
		return app.Options{}, fmt.Errorf("invalid --format %q", f.format)
	}

	return app.Options{
		ConfigPath: f.configPath,
		ScriptPath: f.scriptPath,
		FeedPath:   f.feedPath,
		Labels:     labels,
		Stdin:      stdin,
		Overrides:  overrides,
		Watch:      f.watch,
	}, nil
}
