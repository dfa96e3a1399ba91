package spec

import "testing"

func TestLoadDefaultSpec(t *testing.T) {
	spec, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() err=%v", err)
	}
	if spec.App.Name != "debugkit" {
		t.Fatalf("app name = %q", spec.App.Name)
	}
	if spec.App.DefaultCommand != "run" || spec.App.ShorthandFlag != "name" {
		t.Fatalf("default command = %q/%q", spec.App.DefaultCommand, spec.App.ShorthandFlag)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	if err := Validate([]byte("  \n")); err == nil {
		t.Fatalf("expected error for empty spec")
	}
}

func TestValidateReusesCompiledSchema(t *testing.T) {
	first, err := embeddedSchema()
	if err != nil {
		t.Fatalf("embeddedSchema: %v", err)
	}
	second, _ := embeddedSchema()
	if first != second {
		t.Fatalf("expected schema to compile once")
	}
}
