package launches

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/config"
	"github.com/regenrek/debugkit/internal/identity"
	"github.com/regenrek/debugkit/internal/launch"
	"github.com/regenrek/debugkit/internal/signame"
	"github.com/regenrek/debugkit/internal/userpath"
)

const maxCommandWidth = 60

// Register registers launch file handlers.
func Register(reg *root.Registry) {
	reg.Register("launch.show", runShow)
	reg.Register("launch.list", runList)
}

func runShow(ctx root.CommandContext) error {
	file, err := openFile(ctx)
	if err != nil {
		return err
	}
	name := ""
	if ctx.Cmd != nil {
		name = ctx.Cmd.String("name")
	}
	selected, err := file.Select(name)
	if err != nil {
		return err
	}
	cfg, _, err := config.LoadDefault()
	if err != nil {
		return err
	}
	resolved, err := selected.Resolve(file.Workspace(), cfg.LaunchDefaults())
	if err != nil {
		return err
	}
	view := View(file.Path, resolved)
	if ctx.JSON {
		return ctx.WriteJSON("launch.show", view)
	}
	return writeView(ctx.Out, view)
}

func runList(ctx root.CommandContext) error {
	file, err := openFile(ctx)
	if err != nil {
		return err
	}
	list := output.LaunchList{File: file.Path, Configurations: make([]output.LaunchSummary, 0, len(file.Configurations))}
	for _, cfg := range file.Configurations {
		list.Configurations = append(list.Configurations, output.LaunchSummary{
			Name:    cfg.Name,
			Program: cfg.Program,
			Command: cfg.Command,
			Args:    cfg.Args,
		})
	}
	if ctx.JSON {
		return ctx.WriteJSON("launch.list", list)
	}
	return writeList(ctx.Out, list)
}

func openFile(ctx root.CommandContext) (*launch.File, error) {
	path := ""
	if len(ctx.Args) > 0 {
		path = ctx.Args[0]
	}
	dir := ""
	if strings.TrimSpace(path) == "" {
		var err error
		dir, err = root.ResolveWorkDir(ctx)
		if err != nil {
			return nil, err
		}
	}
	file, err := launch.Open(path, dir)
	if err != nil {
		return nil, fmt.Errorf("%w (create one with '%s init --local')", err, identity.CLIName)
	}
	return file, nil
}

// View converts a resolved launch into its output form.
func View(file string, l *launch.Launch) output.LaunchView {
	view := output.LaunchView{
		File:          file,
		Name:          l.Name,
		Argv:          l.Argv,
		CommandLine:   l.CommandLine(),
		Dir:           l.Dir,
		Env:           l.Env,
		StopSignal:    l.StopSignal,
		StopTimeoutMS: l.StopTimeout.Milliseconds(),
	}
	if l.StopSignal != 0 {
		if name, err := signame.Resolve(l.StopSignal); err == nil {
			view.StopSignalName = name
		}
	}
	return view
}

func writeView(w io.Writer, view output.LaunchView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"file", userpath.ShortenUser(view.File)},
		{"name", view.Name},
		{"command", view.CommandLine},
		{"dir", userpath.ShortenUser(view.Dir)},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(view.Env))
	for key := range view.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(tw, "env:\t%s=%s\n", key, view.Env[key]); err != nil {
			return err
		}
	}
	stop := "kill"
	if view.StopSignalName != "" {
		stop = fmt.Sprintf("%s, kill after %s", view.StopSignalName, time.Duration(view.StopTimeoutMS)*time.Millisecond)
	}
	if _, err := fmt.Fprintf(tw, "stop:\t%s\n", stop); err != nil {
		return err
	}
	return tw.Flush()
}

func writeList(w io.Writer, list output.LaunchList) error {
	if len(list.Configurations) == 0 {
		_, err := fmt.Fprintln(w, "No configurations found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "NAME\tCOMMAND"); err != nil {
		return err
	}
	for i, cfg := range list.Configurations {
		name := cfg.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		command := strings.TrimSpace(cfg.Command)
		if command == "" {
			command = strings.TrimSpace(cfg.Program + " " + cfg.Args)
		} else if cfg.Args != "" {
			command += " " + cfg.Args
		}
		command = runewidth.Truncate(command, maxCommandWidth, "...")
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", name, command); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", userpath.ShortenUser(list.File))
	return err
}
