package initcfg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/regenrek/debugkit/internal/atomicfile"
	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/config"
	"github.com/regenrek/debugkit/internal/identity"
)

const launchTemplate = `# debugkit launch configurations for %s
#
# Run the first configuration with "%s run", or pick one with
# "%s run --name <name>". args is one string split with shell quoting rules.
# Variables: ${WORKSPACE_FOLDER}, ${WORKSPACE_NAME}, vars entries or any env
# var; use ${VAR:-default} for defaults.

version: 1
configurations:
  - name: %s
    command: go run .
    args: ""
    env: {}
    stop_signal: SIGTERM
    stop_timeout: 5s
`

// Register registers init and config handlers.
func Register(reg *root.Registry) {
	reg.Register("init", runInit)
	reg.Register("config.path", runConfigPath)
	reg.Register("config.show", runConfigShow)
}

func runInit(ctx root.CommandContext) error {
	appName := identity.NormalizeCLIName(ctx.Deps.AppName)
	force := ctx.Cmd != nil && ctx.Cmd.Bool("force")
	var (
		path string
		err  error
	)
	if ctx.Cmd != nil && ctx.Cmd.Bool("local") {
		dir, werr := root.ResolveWorkDir(ctx)
		if werr != nil {
			return werr
		}
		path, err = initLocal(appName, dir, force)
	} else {
		path, err = initGlobal(force)
	}
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.WriteJSON("init", output.ActionResult{
			Action: "init",
			Status: "ok",
			Path:   path,
		})
	}
	return writeCreated(ctx.Out, appName, path)
}

func initLocal(appName, dir string, force bool) (string, error) {
	path := filepath.Join(dir, identity.ProjectLaunchFileYML)
	if err := checkExisting(path, force); err != nil {
		return "", err
	}
	name := filepath.Base(dir)
	content := fmt.Sprintf(launchTemplate, name, appName, appName, name)
	if err := atomicfile.Write(path, []byte(content), 0o644, 0); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func initGlobal(force bool) (string, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("cannot determine config path: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("fresh config mode is enabled; no global config to initialize")
	}
	if err := checkExisting(path, force); err != nil {
		return "", err
	}
	if err := config.WriteDefault(path); err != nil {
		return "", err
	}
	return path, nil
}

func checkExisting(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return nil
}

func writeCreated(w io.Writer, appName, path string) error {
	if _, err := fmt.Fprintf(w, "Created %s\n", path); err != nil {
		return err
	}
	if strings.HasSuffix(path, identity.ProjectLaunchFileYML) {
		_, err := fmt.Fprintf(w, "Edit it, then run '%s run' or '%s launch show'\n", appName, appName)
		return err
	}
	return nil
}
