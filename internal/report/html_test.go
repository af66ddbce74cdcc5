package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/noxsec/attacksim/internal/catalog"
)

func render(t *testing.T, run *Run) string {
	t.Helper()
	var b strings.Builder
	if err := RenderHTML(&b, run); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	return b.String()
}

func TestRenderHTML_Rows(t *testing.T) {
	html := render(t, sampleRun())

	for _, want := range []string{
		"whoami", "net user", "reg query hklm",
		"T1033", "T1087", "T1012",
		"ERROR MESSAGE: Blocked By EDR",
		"severity-low", "severity-medium", "severity-high",
		"status-ok", "status-fail",
		">Success<", ">Failed<",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderHTML_Summary(t *testing.T) {
	html := render(t, sampleRun())
	for _, want := range []string{">3<", ">1<", ">2<", "33.33%"} {
		if !strings.Contains(html, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestRenderHTML_EmptyRun(t *testing.T) {
	html := render(t, &Run{ID: "empty", GeneratedAt: time.Now()})
	if !strings.Contains(html, "0.00%") {
		t.Errorf("empty run should report a 0.00%% success rate:\n%s", html)
	}
}

func TestRenderHTML_EscapesFields(t *testing.T) {
	run := &Run{
		ID:          "esc",
		GeneratedAt: time.Now(),
		Records: []Record{{
			Command:        `echo "<script>alert(1)</script>" & whoami`,
			Description:    `uses <b>bold</b> markup`,
			Severity:       catalog.Critical,
			MitreAttackTag: "T1059",
			Succeeded:      false,
			ErrorMessage:   `denied: <policy name="x">`,
		}},
	}
	html := render(t, run)

	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("raw script tag leaked into report")
	}
	if strings.Contains(html, "<b>bold</b>") {
		t.Error("raw description markup leaked into report")
	}
	for _, want := range []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&lt;b&gt;bold&lt;/b&gt;",
		"&amp; whoami",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing escaped form %q", want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(path, sampleRun()); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Attack Simulation Report") {
		t.Error("written report missing title")
	}
}

func TestWriteHTML_UnwritablePath(t *testing.T) {
	err := WriteHTML(filepath.Join(t.TempDir(), "missing-dir", "report.html"), sampleRun())
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
