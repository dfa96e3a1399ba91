package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/cli/output"
	"github.com/regenrek/debugkit/internal/cli/root"
)

func TestRunVersionWrites(t *testing.T) {
	var out bytes.Buffer
	ctx := root.CommandContext{
		Deps: root.Dependencies{Version: "test", AppName: "dbk"},
		Out:  &out,
		Cmd:  &cli.Command{Name: "version"},
	}
	if err := runVersion(ctx); err != nil {
		t.Fatalf("runVersion error: %v", err)
	}
	if !strings.Contains(out.String(), "dbk test") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestRunVersionJSON(t *testing.T) {
	var out bytes.Buffer
	ctx := root.CommandContext{
		Deps: root.Dependencies{Version: "1.2.3", AppName: "debugkit"},
		Out:  &out,
		JSON: true,
	}
	if err := runVersion(ctx); err != nil {
		t.Fatalf("runVersion error: %v", err)
	}
	var env struct {
		Ok   bool               `json:"ok"`
		Data output.VersionInfo `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Ok || env.Data.Version != "1.2.3" || env.Data.Name != "debugkit" || env.Data.GOOS != runtime.GOOS {
		t.Fatalf("envelope=%+v", env)
	}
	wantSignals := runtime.GOOS != "windows" && runtime.GOOS != "plan9" && runtime.GOOS != "js" && runtime.GOOS != "wasip1"
	if env.Data.SignalsSupported != wantSignals {
		t.Fatalf("signals_supported=%v want %v", env.Data.SignalsSupported, wantSignals)
	}
}
