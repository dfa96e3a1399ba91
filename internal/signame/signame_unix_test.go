//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package signame

import (
	"errors"
	"slices"
	"strconv"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"
)

func TestResolveKnownSignals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sig  syscall.Signal
		want string
	}{
		{sig: syscall.SIGHUP, want: "SIGHUP"},
		{sig: syscall.SIGINT, want: "SIGINT"},
		{sig: syscall.SIGKILL, want: "SIGKILL"},
		{sig: syscall.SIGSEGV, want: "SIGSEGV"},
		{sig: syscall.SIGTERM, want: "SIGTERM"},
		{sig: syscall.SIGUSR1, want: "SIGUSR1"},
	}
	for _, tt := range tests {
		got, err := Resolve(int(tt.sig))
		if err != nil {
			t.Fatalf("Resolve(%d) err=%v", tt.sig, err)
		}
		if got != tt.want {
			t.Fatalf("Resolve(%d) = %q want %q", tt.sig, got, tt.want)
		}
	}
}

func TestResolveFallsBackToNumber(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -3, 9999, 1 << 20} {
		got, err := Resolve(n)
		if err != nil {
			t.Fatalf("Resolve(%d) err=%v", n, err)
		}
		if got != strconv.Itoa(n) {
			t.Fatalf("Resolve(%d) = %q want %q", n, got, strconv.Itoa(n))
		}
	}
}

func TestResolveEveryTableEntryMapsBack(t *testing.T) {
	t.Parallel()

	entries, err := Table()
	if err != nil {
		t.Fatalf("Table() err=%v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected a non-empty host table")
	}
	for _, entry := range entries {
		name, err := Resolve(entry.Number)
		if err != nil {
			t.Fatalf("Resolve(%d) err=%v", entry.Number, err)
		}
		if name == "" {
			t.Fatalf("Resolve(%d) returned empty name", entry.Number)
		}
		if got := unix.SignalNum(name); int(got) != entry.Number {
			t.Fatalf("Resolve(%d) = %q which maps to %d", entry.Number, name, got)
		}
	}
}

func TestResolveIsStable(t *testing.T) {
	t.Parallel()

	for n := 1; n < 40; n++ {
		first, err := Resolve(n)
		if err != nil {
			t.Fatalf("Resolve(%d) err=%v", n, err)
		}
		second, _ := Resolve(n)
		if first != second {
			t.Fatalf("Resolve(%d) changed: %q then %q", n, first, second)
		}
	}
}

func TestTableIsOrdered(t *testing.T) {
	t.Parallel()

	entries, err := Table()
	if err != nil {
		t.Fatalf("Table() err=%v", err)
	}
	sorted := slices.IsSortedFunc(entries, func(a, b Entry) int { return a.Number - b.Number })
	if !sorted {
		t.Fatalf("expected entries ordered by number")
	}
	entries[0].Name = "mutated"
	again, _ := Table()
	if again[0].Name == "mutated" {
		t.Fatalf("Table() must return a copy")
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{in: "SIGTERM", want: int(syscall.SIGTERM)},
		{in: "TERM", want: int(syscall.SIGTERM)},
		{in: "sigint", want: int(syscall.SIGINT)},
		{in: " kill ", want: int(syscall.SIGKILL)},
		{in: "9", want: 9},
		{in: "40", want: 40},
		{in: "128", want: MaxNumber},
	}
	for _, tt := range tests {
		got, err := Lookup(tt.in)
		if err != nil {
			t.Fatalf("Lookup(%q) err=%v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Lookup(%q) = %d want %d", tt.in, got, tt.want)
		}
	}
}

func TestLookupUnknownSuggests(t *testing.T) {
	t.Parallel()

	_, err := Lookup("USR")
	var unknown *UnknownSignalError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSignalError, got %v", err)
	}
	if !slices.Contains(unknown.Suggestions, "SIGUSR1") || !slices.Contains(unknown.Suggestions, "SIGUSR2") {
		t.Fatalf("suggestions=%v", unknown.Suggestions)
	}
}

func TestLookupRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "  ", "0", "-9", "129", "1099511627776", "NOPE_SIGNAL"} {
		_, err := Lookup(in)
		var unknown *UnknownSignalError
		if !errors.As(err, &unknown) {
			t.Fatalf("Lookup(%q) expected UnknownSignalError, got %v", in, err)
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	got, err := Describe(int(syscall.SIGKILL))
	if err != nil {
		t.Fatalf("Describe err=%v", err)
	}
	if got != "killed" {
		t.Fatalf("Describe(SIGKILL) = %q", got)
	}
}
