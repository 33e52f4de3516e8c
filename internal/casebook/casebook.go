package casebook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Casebook is a YAML file of compile and optimize cases with their
// expected output.
type Casebook struct {
	// Name identifies the casebook in reports.
	Name string `yaml:"name"`

	// Description is free text shown nowhere but the file itself.
	Description string `yaml:"description,omitempty"`

	// Catalog is an optional CUE catalog path, relative to the casebook.
	Catalog string `yaml:"catalog,omitempty"`

	// Identifiers overrides the escaping settings for this casebook.
	Identifiers *Identifiers `yaml:"identifiers,omitempty"`

	Cases []Case `yaml:"cases"`
}

// Identifiers mirrors the identifier settings of the main configuration.
type Identifiers struct {
	Fold     string   `yaml:"fold,omitempty"`
	Quote    string   `yaml:"quote,omitempty"`
	Reserved []string `yaml:"reserved,omitempty"`
}

// Case is one expectation. Exactly one of Compile and Optimize is set.
type Case struct {
	Name     string       `yaml:"name"`
	Compile  *CompileStep `yaml:"compile,omitempty"`
	Optimize string       `yaml:"optimize,omitempty"`
	Expect   string       `yaml:"expect"`
}

// CompileStep describes a compile call. Exactly one of Ref and Value is
// set; Value may be the empty string, and a nil Value compiles as one.
type CompileStep struct {
	Ref     string  `yaml:"ref,omitempty"`
	Value   *string `yaml:"value,omitempty"`
	Command string  `yaml:"command"`
}

// Kind reports "compile" or "optimize".
func (c Case) Kind() string {
	if c.Compile != nil {
		return KindCompile
	}
	return KindOptimize
}

// Case kinds.
const (
	KindCompile  = "compile"
	KindOptimize = "optimize"
)

// Load reads and parses a casebook file. Unknown fields are rejected and
// the catalog path is resolved against the file's directory.
func Load(path string) (*Casebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read casebook: %w", err)
	}

	book, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if book.Catalog != "" && !filepath.IsAbs(book.Catalog) {
		book.Catalog = filepath.Join(filepath.Dir(path), book.Catalog)
	}
	return book, nil
}

// Parse decodes and validates casebook YAML.
func Parse(data []byte) (*Casebook, error) {
	var book Casebook
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&book); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&book); err != nil {
		return nil, fmt.Errorf("invalid casebook: %w", err)
	}
	return &book, nil
}

func validate(b *Casebook) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(b.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(b.Cases))
	for i, c := range b.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("case %q: duplicate name", c.Name)
		}
		seen[c.Name] = true

		switch {
		case c.Compile != nil && c.Optimize != "":
			return fmt.Errorf("case %q: set either compile or optimize, not both", c.Name)
		case c.Compile == nil && c.Optimize == "":
			return fmt.Errorf("case %q: compile or optimize is required", c.Name)
		case c.Compile != nil:
			hasRef, hasValue := c.Compile.Ref != "", c.Compile.Value != nil
			if hasRef == hasValue {
				return fmt.Errorf("case %q: compile needs exactly one of ref and value", c.Name)
			}
		}
	}
	return nil
}
