package output

import "time"

type ActionResult struct {
	Action   string         `json:"action"`
	Status   string         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Path     string         `json:"path,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

type TokenizedLine struct {
	Line   string   `json:"line"`
	Tokens []string `json:"tokens"`
	Joined string   `json:"joined,omitempty"`
}

type TokenizeResult struct {
	Lines []TokenizedLine `json:"lines"`
}

type SignalInfo struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Input       string `json:"input,omitempty"`
}

type SignalList struct {
	Platform string       `json:"platform"`
	Signals  []SignalInfo `json:"signals"`
}

type LaunchView struct {
	File           string            `json:"file,omitempty"`
	Name           string            `json:"name,omitempty"`
	Argv           []string          `json:"argv"`
	CommandLine    string            `json:"command_line"`
	Dir            string            `json:"dir,omitempty"`
	Env            map[string]string `json:"env,omitempty"`
	StopSignal     int               `json:"stop_signal,omitempty"`
	StopSignalName string            `json:"stop_signal_name,omitempty"`
	StopTimeoutMS  int64             `json:"stop_timeout_ms"`
}

type LaunchSummary struct {
	Name    string `json:"name,omitempty"`
	Program string `json:"program,omitempty"`
	Command string `json:"command,omitempty"`
	Args    string `json:"args,omitempty"`
}

type LaunchList struct {
	File           string          `json:"file"`
	Configurations []LaunchSummary `json:"configurations"`
}

type ExitSummary struct {
	PID         int    `json:"pid"`
	Code        int    `json:"code"`
	Signaled    bool   `json:"signaled"`
	Signal      int    `json:"signal,omitempty"`
	SignalName  string `json:"signal_name,omitempty"`
	Stopped     bool   `json:"stopped"`
	Killed      bool   `json:"killed"`
	ShellCode   int    `json:"shell_code"`
	Description string `json:"description"`
	DurationMS  int64  `json:"duration_ms"`
}

type RunEvent struct {
	Type    string       `json:"type"`
	Name    string       `json:"name,omitempty"`
	PID     int          `json:"pid,omitempty"`
	Command string       `json:"command,omitempty"`
	Exit    *ExitSummary `json:"exit,omitempty"`
	TS      time.Time    `json:"ts"`
}

type ConfigView struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Fresh  bool   `json:"fresh,omitempty"`
	Config any    `json:"config,omitempty"`
}

type VersionInfo struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	GOOS             string `json:"goos"`
	GOARCH           string `json:"goarch"`
	SignalsSupported bool   `json:"signals_supported"`
}
