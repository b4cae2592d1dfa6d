// ABOUTME: Renders command results as human text, JSON, or YAML
// ABOUTME: Structured output can be narrowed with a JMESPath query

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmespath-community/go-jmespath"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, or yaml (case-insensitive). Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q: must be text, json, or yaml", s)
	}
}

// Printer writes results in the selected format
type Printer struct {
	Format Format
	// Query is a JMESPath expression applied before structured output.
	// A query with text format prints JSON.
	Query string
}

// Validate compiles the query so bad expressions fail before any request is made
func (p Printer) Validate() error {
	if p.Query == "" {
		return nil
	}
	if _, err := jmespath.Compile(p.Query); err != nil {
		return fmt.Errorf("invalid query %q: %w", p.Query, err)
	}
	return nil
}

// Structured reports whether output is machine-readable
func (p Printer) Structured() bool {
	return p.Format == FormatJSON || p.Format == FormatYAML || p.Query != ""
}

// Print writes v. human renders the text form and is used only for text output.
func (p Printer) Print(w io.Writer, v any, human func(io.Writer) error) error {
	if !p.Structured() {
		return human(w)
	}

	data := v
	if p.Query != "" {
		var err error
		if data, err = Search(p.Query, v); err != nil {
			return err
		}
	}

	if p.Format == FormatYAML {
		return writeYAML(w, data)
	}
	return writeJSON(w, data)
}

// Search evaluates a JMESPath expression against v's JSON form
func Search(query string, v any) (any, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return nil, err
	}
	result, err := jmespath.Search(query, generic)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	return result, nil
}

// toGeneric converts v to maps, slices, and scalars so JMESPath can walk it
func toGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return generic, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
