package userpath

import (
	"path/filepath"
	"runtime"
	"testing"
)

func withHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("home directory comes from USERPROFILE on windows")
	}
	home := filepath.Join(t.TempDir(), "alice")
	t.Setenv("HOME", home)
	return home
}

func TestExpandUser(t *testing.T) {
	home := withHome(t)
	for in, want := range map[string]string{
		"":                  "",
		"~":                 home,
		"~/.debugkit.yml":   filepath.Join(home, ".debugkit.yml"),
		"~/src/app/launch":  filepath.Join(home, "src", "app", "launch"),
		"/usr/local/bin":    "/usr/local/bin",
		"bin/server":        "bin/server",
		"/srv/~deploy":      "/srv/~deploy",
		"~deploy/app":       "~deploy/app",
		"${HOME}/not-tilde": "${HOME}/not-tilde",
	} {
		if got := ExpandUser(in); got != want {
			t.Fatalf("ExpandUser(%q) = %q want %q", in, got, want)
		}
	}
}

func TestShortenUser(t *testing.T) {
	home := withHome(t)
	for in, want := range map[string]string{
		"":                                "",
		home:                              "~",
		filepath.Join(home, "src", "app"): "~/src/app",
		"/usr/local/bin":                  "/usr/local/bin",
		"bin/server":                      "bin/server",
		home + "-other/x":                 home + "-other/x",
	} {
		if got := ShortenUser(in); got != want {
			t.Fatalf("ShortenUser(%q) = %q want %q", in, got, want)
		}
	}
}

func TestShortenThenExpand(t *testing.T) {
	home := withHome(t)
	for _, p := range []string{home, filepath.Join(home, ".debugkit.yml"), filepath.Join(home, "a", "b")} {
		if got := ExpandUser(ShortenUser(p)); got != p {
			t.Fatalf("ExpandUser(ShortenUser(%q)) = %q", p, got)
		}
	}
}
