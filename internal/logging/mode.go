package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	ModeRun
)

// ModeFromArgs picks ModeRun for invocations that end up running a debuggee:
// the "run" command, a bare invocation, and "debugkit NAME" where NAME is not
// a command (isCommand reports known top-level commands; nil treats every
// word as a command).
func ModeFromArgs(args []string, isCommand func(string) bool) Mode {
	switch len(args) {
	case 0:
		return ModeCLI
	case 1:
		return ModeRun
	}
	for _, arg := range args[1:] {
		word := strings.ToLower(strings.TrimSpace(arg))
		if word == "" || strings.HasPrefix(word, "-") {
			continue
		}
		if word == "run" {
			return ModeRun
		}
		if len(args) == 2 && isCommand != nil && !isCommand(word) {
			return ModeRun
		}
		return ModeCLI
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	default:
		return "cli"
	}
}
