package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriteSuccessCarriesPayload(t *testing.T) {
	var buf bytes.Buffer
	meta := NewMeta("signal.name", "test")
	if err := WriteSuccess(&buf, meta, SignalInfo{Number: 9, Name: "SIGKILL"}); err != nil {
		t.Fatalf("WriteSuccess err=%v", err)
	}
	var got struct {
		Ok   bool       `json:"ok"`
		Data SignalInfo `json:"data"`
		Meta Meta       `json:"meta"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal err=%v", err)
	}
	if !got.Ok {
		t.Fatalf("expected ok true")
	}
	if diff := cmp.Diff(SignalInfo{Number: 9, Name: "SIGKILL"}, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(meta, got.Meta, cmpopts.IgnoreFields(Meta{}, "TS")); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteErrorCarriesDetails(t *testing.T) {
	var buf bytes.Buffer
	meta := NewMeta("signal.number", "test")
	details := map[string]any{"input": "SIGKIL", "suggestions": []any{"SIGKILL"}}
	if err := WriteError(&buf, meta, "unknown_signal", "unknown signal", details); err != nil {
		t.Fatalf("WriteError err=%v", err)
	}
	var got ErrorEnvelope
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal err=%v", err)
	}
	want := ErrorBody{Code: "unknown_signal", Message: "unknown signal", Details: details}
	if got.Ok {
		t.Fatalf("expected ok false")
	}
	if diff := cmp.Diff(want, got.Error); diff != "" {
		t.Fatalf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSuccess(&buf, NewMeta("args", "test"), []string{"a<b", "c&d"}); err != nil {
		t.Fatalf("WriteSuccess err=%v", err)
	}
	if !strings.Contains(buf.String(), `"a<b","c&d"`) {
		t.Fatalf("expected raw html characters, got %s", buf.String())
	}
}
