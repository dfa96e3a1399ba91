package initcfg

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
	"github.com/regenrek/debugkit/internal/config"
	"github.com/regenrek/debugkit/internal/launch"
	"github.com/regenrek/debugkit/internal/runenv"
)

func TestInitLocalWritesValidLaunchFile(t *testing.T) {
	dir := t.TempDir()
	path, err := initLocal("debugkit", dir, false)
	if err != nil {
		t.Fatalf("initLocal error: %v", err)
	}
	if path != filepath.Join(dir, ".debugkit.yml") {
		t.Fatalf("path=%q", path)
	}
	file, err := launch.Load(path)
	if err != nil {
		t.Fatalf("generated launch file does not load: %v", err)
	}
	if file.Configurations[0].Name != filepath.Base(dir) {
		t.Fatalf("name=%q", file.Configurations[0].Name)
	}
	if _, err := initLocal("debugkit", dir, false); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected exists error, got %v", err)
	}
	if _, err := initLocal("debugkit", dir, true); err != nil {
		t.Fatalf("force initLocal error: %v", err)
	}
}

func TestInitGlobalWritesConfig(t *testing.T) {
	t.Setenv(runenv.FreshConfigEnv, "")
	t.Setenv(runenv.ConfigDirEnv, t.TempDir())

	path, err := initGlobal(false)
	if err != nil {
		t.Fatalf("initGlobal error: %v", err)
	}
	cfgPath, err := config.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if path != cfgPath {
		t.Fatalf("path=%q want %q", path, cfgPath)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("expected config: %v", err)
	}
	if _, err := initGlobal(false); err == nil {
		t.Fatalf("expected exists error")
	}
}

func TestInitGlobalFreshConfig(t *testing.T) {
	t.Setenv(runenv.FreshConfigEnv, "1")
	if _, err := initGlobal(true); err == nil {
		t.Fatalf("expected fresh config error")
	}
}

func TestRunInitLocalJSON(t *testing.T) {
	dir := t.TempDir()
	cmd := &cli.Command{Name: "init", Flags: []cli.Flag{&cli.BoolFlag{Name: "local"}, &cli.BoolFlag{Name: "force"}}}
	if err := cmd.Set("local", "true"); err != nil {
		t.Fatalf("cmd.Set(local): %v", err)
	}
	var out bytes.Buffer
	ctx := root.CommandContext{
		Cmd:  cmd,
		JSON: true,
		Out:  &out,
		Deps: root.Dependencies{Version: "test", AppName: "dbk", WorkDir: dir},
	}
	if err := runInit(ctx); err != nil {
		t.Fatalf("runInit error: %v", err)
	}
	var env struct {
		Ok   bool                `json:"ok"`
		Data output.ActionResult `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Ok || env.Data.Path != filepath.Join(dir, ".debugkit.yml") {
		t.Fatalf("envelope=%+v", env)
	}
	data, err := os.ReadFile(env.Data.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"dbk run"`) {
		t.Fatalf("expected app name in template, got %q", string(data))
	}
}

func TestConfigPathAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(runenv.FreshConfigEnv, "")
	t.Setenv(runenv.ConfigDirEnv, dir)
	cfgPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(cfgPath, []byte("run:\n  stop_signal: SIGINT\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	if err := runConfigPath(root.CommandContext{Out: &out}); err != nil {
		t.Fatalf("runConfigPath error: %v", err)
	}
	if strings.TrimSpace(out.String()) != cfgPath {
		t.Fatalf("path output=%q", out.String())
	}

	out.Reset()
	if err := runConfigShow(root.CommandContext{Out: &out}); err != nil {
		t.Fatalf("runConfigShow error: %v", err)
	}
	if !strings.Contains(out.String(), "stop_signal: SIGINT") || !strings.HasPrefix(out.String(), "# "+cfgPath) {
		t.Fatalf("show output=%q", out.String())
	}

	out.Reset()
	if err := runConfigShow(root.CommandContext{Out: &out, JSON: true}); err != nil {
		t.Fatalf("runConfigShow json error: %v", err)
	}
	var env struct {
		Data output.ConfigView `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Data.Exists || env.Data.Path != cfgPath {
		t.Fatalf("view=%+v", env.Data)
	}
}

func TestConfigPathFresh(t *testing.T) {
	t.Setenv(runenv.FreshConfigEnv, "1")
	var out bytes.Buffer
	if err := runConfigPath(root.CommandContext{Out: &out}); err != nil {
		t.Fatalf("runConfigPath error: %v", err)
	}
	if !strings.Contains(out.String(), "fresh config") {
		t.Fatalf("output=%q", out.String())
	}
}
