package initcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/config"
	"github.com/regenrek/debugkit/internal/runenv"
)

func runConfigPath(ctx root.CommandContext) error {
	view, err := configView(false)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.WriteJSON("config.path", view)
	}
	if view.Fresh {
		_, err := fmt.Fprintln(ctx.Out, "(fresh config: no global config file)")
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, view.Path)
	return err
}

func runConfigShow(ctx root.CommandContext) error {
	view, err := configView(true)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.WriteJSON("config.show", view)
	}
	data, err := yaml.Marshal(view.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if view.Path != "" {
		if _, err := fmt.Fprintf(ctx.Out, "# %s\n", view.Path); err != nil {
			return err
		}
	}
	_, err = ctx.Out.Write(data)
	return err
}

func configView(withConfig bool) (output.ConfigView, error) {
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return output.ConfigView{}, err
	}
	view := output.ConfigView{Path: path, Fresh: runenv.FreshConfigEnabled()}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			view.Exists = true
		}
	}
	if withConfig {
		view.Config = cfg
	}
	return view, nil
}
