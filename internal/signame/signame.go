// Package signame maps OS signal numbers to their short names using the
// signal table of the running host.
//
// The table is the one golang.org/x/sys/unix generates from the platform
// headers, so numbers follow the host (SIGUSR1 is 10 on Linux and 30 on
// Darwin). Platforms without POSIX signals have no table and every call
// returns *UnsupportedPlatformError.
//
// All functions are safe for concurrent use.
package signame

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// MaxNumber is the largest signal number any supported host defines (mips
// Linux). Lookup rejects larger numbers.
const MaxNumber = 128

// Entry is one row of the host signal table.
type Entry struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UnsupportedPlatformError reports that the host has no signal table.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	platform := e.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	return fmt.Sprintf("signame: signals are not supported on %s", platform)
}

// UnknownSignalError reports a name or number that is not in the host table.
type UnknownSignalError struct {
	Input       string
	Suggestions []string
}

func (e *UnknownSignalError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("signame: unknown signal %q", e.Input)
	}
	return fmt.Sprintf("signame: unknown signal %q (did you mean %s?)", e.Input, strings.Join(e.Suggestions, ", "))
}

// Resolve returns the short name of signal n, for example "SIGKILL" for 9 on
// Linux. Numbers without a name resolve to their decimal form. When the host
// table lists aliases for n, whichever the table yields first is returned.
func Resolve(n int) (string, error) {
	if err := supported(); err != nil {
		return "", err
	}
	if name, ok := hostName(n); ok {
		return name, nil
	}
	return strconv.Itoa(n), nil
}

// Lookup returns the number for a signal written as "SIGTERM", "TERM",
// "sigterm" or "15". Numbers are accepted from 1 to MaxNumber even when the
// host has no name for them. Unknown names fail with *UnknownSignalError listing
// close matches.
func Lookup(s string) (int, error) {
	if err := supported(); err != nil {
		return 0, err
	}
	value := strings.TrimSpace(s)
	if value == "" {
		return 0, &UnknownSignalError{Input: s}
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n <= 0 || n > MaxNumber {
			return 0, &UnknownSignalError{Input: s}
		}
		return n, nil
	}
	name := canonicalName(value)
	if n, ok := hostNumber(name); ok {
		return n, nil
	}
	return 0, &UnknownSignalError{Input: s, Suggestions: suggest(value)}
}

// Table returns the host signal table ordered by number.
func Table() ([]Entry, error) {
	if err := supported(); err != nil {
		return nil, err
	}
	return hostTable(), nil
}

// Describe returns the host description of signal n, such as "killed".
func Describe(n int) (string, error) {
	if err := supported(); err != nil {
		return "", err
	}
	return hostDescription(n), nil
}

func canonicalName(value string) string {
	name := strings.ToUpper(strings.TrimSpace(value))
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	return name
}
