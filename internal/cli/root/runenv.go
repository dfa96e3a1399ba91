package root

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/debugkit/internal/runenv"
)

type envSnapshot struct {
	key   string
	value string
	ok    bool
}

// applyRunEnvFromFlags exports --fresh-config to the environment so config
// lookups made by handlers skip the global file. The returned func restores
// the previous environment.
func applyRunEnvFromFlags(cmd *cli.Command) (func(), error) {
	if cmd == nil || !cmd.Bool("fresh-config") {
		return func() {}, nil
	}
	original := captureEnv(runenv.FreshConfigEnv)
	if err := os.Setenv(runenv.FreshConfigEnv, "1"); err != nil {
		restoreEnv(original)
		return nil, fmt.Errorf("set fresh config: %w", err)
	}
	return func() {
		restoreEnv(original)
	}, nil
}

func captureEnv(keys ...string) []envSnapshot {
	snaps := make([]envSnapshot, 0, len(keys))
	for _, key := range keys {
		value, ok := os.LookupEnv(key)
		snaps = append(snaps, envSnapshot{key: key, value: value, ok: ok})
	}
	return snaps
}

func restoreEnv(snaps []envSnapshot) {
	for _, snap := range snaps {
		if snap.ok {
			_ = os.Setenv(snap.key, snap.value)
		} else {
			_ = os.Unsetenv(snap.key)
		}
	}
}
