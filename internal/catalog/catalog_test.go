package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validCatalog = `[
    {
        "Command": "whoami /all",
        "Description": "Enumerate current user privileges",
        "Severity": "Low",
        "MitreAttackTag": "T1033"
    },
    {
        "Command": "net user administrator",
        "Description": "Query the built-in administrator account",
        "Severity": "Medium",
        "MitreAttackTag": "T1087.001"
    }
]`

func TestLoad_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	if err := os.WriteFile(path, []byte(validCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	specs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d, want 2", len(specs))
	}
	if specs[0].Command != "whoami /all" {
		t.Errorf("specs[0].Command = %q", specs[0].Command)
	}
	if specs[1].Severity != Medium {
		t.Errorf("specs[1].Severity = %q, want Medium", specs[1].Severity)
	}
	if specs[1].MitreAttackTag != "T1087.001" {
		t.Errorf("specs[1].MitreAttackTag = %q", specs[1].MitreAttackTag)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestParse_MissingField(t *testing.T) {
	_, err := Parse([]byte(`[{"Command": "whoami", "Description": "d", "Severity": "Low"}]`))
	if err == nil {
		t.Fatal("expected error for missing MitreAttackTag")
	}
	if !strings.Contains(err.Error(), "MitreAttackTag") {
		t.Errorf("error = %q, want to name the missing field", err)
	}
}

func TestParse_FieldNamesAreCaseSensitive(t *testing.T) {
	// Lowercase keys must not satisfy the required uppercase fields.
	_, err := Parse([]byte(`[{"command": "whoami", "description": "d", "severity": "Low", "mitreattacktag": "T1033"}]`))
	if err == nil {
		t.Fatal("expected error for lowercase field names")
	}
}

func TestParse_UnknownSeverity(t *testing.T) {
	_, err := Parse([]byte(`[{"Command": "whoami", "Description": "d", "Severity": "Urgent", "MitreAttackTag": "T1033"}]`))
	if err == nil {
		t.Fatal("expected error for unknown severity")
	}
	if !strings.Contains(err.Error(), "Urgent") {
		t.Errorf("error = %q, want to mention the bad value", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"not": "a list"}`))
	if err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestParse_Empty(t *testing.T) {
	specs, err := Parse([]byte(`[]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("len(specs) = %d, want 0", len(specs))
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	specs := []CommandSpec{
		{Command: "id", Description: "show uid", Severity: Informational, MitreAttackTag: "T1033"},
	}
	if err := Write(path, specs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0] != specs[0] {
		t.Errorf("round trip = %+v, want %+v", got, specs)
	}
}

func TestSeverity_CSSClass(t *testing.T) {
	cases := map[Severity]string{
		Critical:      "severity-critical",
		High:          "severity-high",
		Medium:        "severity-medium",
		Low:           "severity-low",
		Informational: "severity-informational",
	}
	for sev, want := range cases {
		if got := sev.CSSClass(); got != want {
			t.Errorf("%s.CSSClass() = %q, want %q", sev, got, want)
		}
	}
}
