package signal

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/signame"
)

const maxDescriptionWidth = 40

// Register registers signal handlers.
func Register(reg *root.Registry) {
	reg.Register("signal.name", runName)
	reg.Register("signal.number", runNumber)
	reg.Register("signal.list", runList)
}

func runName(ctx root.CommandContext) error {
	infos := make([]output.SignalInfo, 0, len(ctx.Args))
	for _, raw := range ctx.Args {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid signal number %q", raw)
		}
		name, err := signame.Resolve(n)
		if err != nil {
			return err
		}
		infos = append(infos, describe(n, name, raw))
	}
	if ctx.JSON {
		return writeJSON(ctx, "signal.name", infos)
	}
	for _, info := range infos {
		if _, err := fmt.Fprintln(ctx.Out, info.Name); err != nil {
			return err
		}
	}
	return nil
}

func runNumber(ctx root.CommandContext) error {
	infos := make([]output.SignalInfo, 0, len(ctx.Args))
	for _, raw := range ctx.Args {
		n, err := signame.Lookup(raw)
		if err != nil {
			return err
		}
		name, err := signame.Resolve(n)
		if err != nil {
			return err
		}
		infos = append(infos, describe(n, name, raw))
	}
	if ctx.JSON {
		return writeJSON(ctx, "signal.number", infos)
	}
	for _, info := range infos {
		if _, err := fmt.Fprintln(ctx.Out, info.Number); err != nil {
			return err
		}
	}
	return nil
}

func runList(ctx root.CommandContext) error {
	table, err := signame.Table()
	if err != nil {
		return err
	}
	infos := make([]output.SignalInfo, 0, len(table))
	for _, entry := range table {
		infos = append(infos, output.SignalInfo{
			Number:      entry.Number,
			Name:        entry.Name,
			Description: entry.Description,
		})
	}
	if ctx.JSON {
		return writeJSON(ctx, "signal.list", infos)
	}
	return writeTable(ctx.Out, infos)
}

func describe(n int, name, input string) output.SignalInfo {
	info := output.SignalInfo{Number: n, Name: name, Input: input}
	if desc, err := signame.Describe(n); err == nil && name != strconv.Itoa(n) {
		info.Description = desc
	}
	return info
}

func writeJSON(ctx root.CommandContext, command string, infos []output.SignalInfo) error {
	return ctx.WriteJSON(command, output.SignalList{
		Platform: runtime.GOOS,
		Signals:  infos,
	})
}

// writeTable prints the table like "kill -l" with descriptions: numbers
// right-aligned, names padded to the widest name.
func writeTable(w io.Writer, infos []output.SignalInfo) error {
	numWidth, nameWidth := 0, 0
	for _, info := range infos {
		numWidth = max(numWidth, len(strconv.Itoa(info.Number)))
		nameWidth = max(nameWidth, runewidth.StringWidth(info.Name))
	}
	for _, info := range infos {
		name := runewidth.FillRight(info.Name, nameWidth)
		desc := runewidth.Truncate(info.Description, maxDescriptionWidth, "...")
		line := strings.TrimRight(fmt.Sprintf("%*d  %s  %s", numWidth, info.Number, name, desc), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
