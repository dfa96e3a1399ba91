package spec

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml commands.schema.json
var embeddedFS embed.FS

// Spec is the declarative CLI command tree loaded from commands.yaml.
type Spec struct {
	Version     int       `yaml:"version"`
	App         AppSpec   `yaml:"app"`
	GlobalFlags []Flag    `yaml:"global_flags"`
	Commands    []Command `yaml:"commands"`
}

// AppSpec configures the top-level CLI app.
type AppSpec struct {
	Name           string `yaml:"name"`
	Summary        string `yaml:"summary"`
	DefaultCommand string `yaml:"default_command"`
	ShorthandFlag  string `yaml:"shorthand_flag"`
}

// Flag describes a CLI flag.
type Flag struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required"`
	Default     any      `yaml:"default"`
	Enum        []string `yaml:"enum"`
	Description string   `yaml:"description"`
	Env         string   `yaml:"env"`
	Hidden      bool     `yaml:"hidden"`
}

// Arg describes a positional argument.
type Arg struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required"`
	Variadic    bool     `yaml:"variadic"`
	Enum        []string `yaml:"enum"`
	Description string   `yaml:"description"`
}

// Constraint describes argument/flag validation rules.
type Constraint struct {
	Type   string   `yaml:"type"`
	Fields []string `yaml:"fields"`
}

// JSONSpec declares JSON output capability.
type JSONSpec struct {
	Supported bool   `yaml:"supported"`
	SchemaRef string `yaml:"schema_ref"`
	Stream    bool   `yaml:"stream"`
}

// Command describes a CLI command and its subcommands.
type Command struct {
	Name        string       `yaml:"name"`
	ID          string       `yaml:"id"`
	Summary     string       `yaml:"summary"`
	Description string       `yaml:"description"`
	Aliases     []string     `yaml:"aliases"`
	Flags       []Flag       `yaml:"flags"`
	Args        []Arg        `yaml:"args"`
	Constraints []Constraint `yaml:"constraints"`
	SideEffects bool         `yaml:"side_effects"`
	Confirm     bool         `yaml:"confirm"`
	JSON        *JSONSpec    `yaml:"json"`
	Hidden      bool         `yaml:"hidden"`
	Subcommands []Command    `yaml:"subcommands"`
}

// LoadDefault loads the embedded spec and validates it.
func LoadDefault() (*Spec, error) {
	data, err := embeddedFS.ReadFile("commands.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded spec: %w", err)
	}
	return Parse(data)
}

// Parse loads a spec from YAML bytes and validates it against the embedded schema.
func Parse(data []byte) (*Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("spec is empty")
	}
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse spec yaml: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	if err := spec.check(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the YAML spec against the embedded JSON schema.
func Validate(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("spec is empty")
	}
	schema, err := embeddedSchema()
	if err != nil {
		return err
	}
	doc, err := schemaDocument(data)
	if err != nil {
		return fmt.Errorf("serialize spec: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("spec schema validation: %w", err)
	}
	return nil
}

var embeddedSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	schemaBytes, err := embeddedFS.ReadFile("commands.schema.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema json: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("commands.schema.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile("commands.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// check enforces the cross references the schema cannot express: unique
// command IDs nested under their parent ID, constraint fields that name a
// declared arg or flag, and a default command that exists and declares the
// shorthand flag.
func (s *Spec) check() error {
	seen := make(map[string]struct{})
	var walk func(parent string, cmds []Command) error
	walk = func(parent string, cmds []Command) error {
		for _, cmd := range cmds {
			if _, dup := seen[cmd.ID]; dup {
				return fmt.Errorf("spec: duplicate command id %q", cmd.ID)
			}
			seen[cmd.ID] = struct{}{}
			if parent != "" && !strings.HasPrefix(cmd.ID, parent+".") {
				return fmt.Errorf("spec: command id %q is not under %q", cmd.ID, parent)
			}
			for _, constraint := range cmd.Constraints {
				for _, field := range constraint.Fields {
					if !cmd.declares(field) && !s.declaresGlobal(field) {
						return fmt.Errorf("spec: %s constraint names unknown field %q", cmd.ID, field)
					}
				}
			}
			if err := walk(cmd.ID, cmd.Subcommands); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk("", s.Commands); err != nil {
		return err
	}
	defaultCmd := strings.TrimSpace(s.App.DefaultCommand)
	if defaultCmd == "" {
		return nil
	}
	cmd := s.FindByID(defaultCmd)
	if cmd == nil {
		return fmt.Errorf("spec: default command %q not found", defaultCmd)
	}
	if flag := strings.TrimSpace(s.App.ShorthandFlag); flag != "" && !cmd.declares(flag) {
		return fmt.Errorf("spec: shorthand flag %q is not a flag of %s", flag, cmd.ID)
	}
	return nil
}

func (c Command) declares(field string) bool {
	for _, arg := range c.Args {
		if arg.Name == field {
			return true
		}
	}
	for _, flag := range c.Flags {
		if flag.Name == field {
			return true
		}
	}
	return false
}

func (s *Spec) declaresGlobal(field string) bool {
	for _, flag := range s.GlobalFlags {
		if flag.Name == field {
			return true
		}
	}
	return false
}

// schemaDocument decodes YAML into the generic form the schema validator
// expects: string map keys and json.Number values.
func schemaDocument(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	normalized, err := stringKeys(raw)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(payload))
}

func stringKeys(value any) (any, error) {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			strKey, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("invalid yaml map key: %T", key)
			}
			out[strKey] = val
		}
		return stringKeys(out)
	case map[string]any:
		for key, val := range typed {
			normalized, err := stringKeys(val)
			if err != nil {
				return nil, err
			}
			typed[key] = normalized
		}
		return typed, nil
	case []any:
		for i, val := range typed {
			normalized, err := stringKeys(val)
			if err != nil {
				return nil, err
			}
			typed[i] = normalized
		}
		return typed, nil
	default:
		return value, nil
	}
}

// AllCommands returns a flat list of commands including subcommands.
func (s *Spec) AllCommands() []Command {
	if s == nil {
		return nil
	}
	var out []Command
	for _, cmd := range s.Commands {
		appendCommands(&out, cmd)
	}
	return out
}

func appendCommands(out *[]Command, cmd Command) {
	*out = append(*out, cmd)
	for _, sub := range cmd.Subcommands {
		appendCommands(out, sub)
	}
}

// HasTopLevel reports whether name is a top-level command, one of its
// aliases, or the built-in help command.
func (s *Spec) HasTopLevel(name string) bool {
	name = strings.TrimSpace(name)
	if s == nil || name == "" {
		return false
	}
	if name == "help" || name == "h" {
		return true
	}
	for _, cmd := range s.Commands {
		if strings.EqualFold(cmd.Name, name) {
			return true
		}
		for _, alias := range cmd.Aliases {
			if strings.EqualFold(alias, name) {
				return true
			}
		}
	}
	return false
}

// FindByID returns the command with the matching ID.
func (s *Spec) FindByID(id string) *Command {
	id = strings.TrimSpace(id)
	if id == "" || s == nil {
		return nil
	}
	for _, cmd := range s.AllCommands() {
		if cmd.ID == id {
			copy := cmd
			return &copy
		}
	}
	return nil
}
