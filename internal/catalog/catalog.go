// Package catalog defines the command catalog: the ordered list of
// simulated attack commands loaded from a JSON file.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Severity is the input-supplied display label for a command.
// It has no effect on execution.
type Severity string

const (
	Informational Severity = "Informational"
	Low           Severity = "Low"
	Medium        Severity = "Medium"
	High          Severity = "High"
	Critical      Severity = "Critical"
)

// Valid reports whether s is one of the known severity labels.
func (s Severity) Valid() bool {
	switch s {
	case Informational, Low, Medium, High, Critical:
		return true
	}
	return false
}

// CSSClass returns the stylesheet class used for this severity in the
// HTML report, e.g. "severity-critical".
func (s Severity) CSSClass() string {
	switch s {
	case Critical:
		return "severity-critical"
	case High:
		return "severity-high"
	case Medium:
		return "severity-medium"
	case Low:
		return "severity-low"
	default:
		return "severity-informational"
	}
}

// CommandSpec is one entry of the command catalog. Order in the catalog
// file defines execution and report order.
type CommandSpec struct {
	Command        string   `json:"Command"`
	Description    string   `json:"Description"`
	Severity       Severity `json:"Severity"`
	MitreAttackTag string   `json:"MitreAttackTag"`
}

// rawSpec mirrors CommandSpec with pointer fields so that absent keys
// can be told apart from empty values.
type rawSpec struct {
	Command        *string `json:"Command"`
	Description    *string `json:"Description"`
	Severity       *string `json:"Severity"`
	MitreAttackTag *string `json:"MitreAttackTag"`
}

// Load reads an ordered command catalog from the JSON file at path.
// Every entry must carry all four fields (case-sensitive names) and a
// known severity; anything else fails the whole load.
func Load(path string) ([]CommandSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog JSON.
func Parse(data []byte) ([]CommandSpec, error) {
	var raw []rawSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	specs := make([]CommandSpec, 0, len(raw))
	for i, r := range raw {
		if r.Command == nil {
			return nil, fmt.Errorf("catalog entry %d: missing required field %q", i, "Command")
		}
		if r.Description == nil {
			return nil, fmt.Errorf("catalog entry %d: missing required field %q", i, "Description")
		}
		if r.Severity == nil {
			return nil, fmt.Errorf("catalog entry %d: missing required field %q", i, "Severity")
		}
		if r.MitreAttackTag == nil {
			return nil, fmt.Errorf("catalog entry %d: missing required field %q", i, "MitreAttackTag")
		}
		sev := Severity(*r.Severity)
		if !sev.Valid() {
			return nil, fmt.Errorf("catalog entry %d: unknown severity %q", i, *r.Severity)
		}
		specs = append(specs, CommandSpec{
			Command:        *r.Command,
			Description:    *r.Description,
			Severity:       sev,
			MitreAttackTag: *r.MitreAttackTag,
		})
	}
	return specs, nil
}

// Write saves specs as indented catalog JSON at path.
func Write(path string, specs []CommandSpec) error {
	data, err := json.MarshalIndent(specs, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
