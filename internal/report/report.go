// Package report defines the simulation result records, batch runs,
// summary statistics, HTML rendering, and run persistence.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/noxsec/attacksim/internal/catalog"
)

// Record is the immutable outcome of one command execution.
//
// ErrorMessage is empty exactly when Succeeded is true, with one
// exception: a command that failed without producing any text keeps an
// explicit empty string, so rendering stays total.
type Record struct {
	Command        string           `json:"command"`
	Description    string           `json:"description"`
	Severity       catalog.Severity `json:"severity"`
	MitreAttackTag string           `json:"mitre_attack_tag"`
	Succeeded      bool             `json:"succeeded"`
	ErrorMessage   string           `json:"error_message"`
}

// Status returns the display label for the record outcome.
func (r Record) Status() string {
	if r.Succeeded {
		return "Success"
	}
	return "Failed"
}

// StatusClass returns the stylesheet class for the record outcome.
func (r Record) StatusClass() string {
	if r.Succeeded {
		return "status-ok"
	}
	return "status-fail"
}

// Run is the outcome of one whole batch. Records are in catalog order.
// A Run is a plain value: it can be stored, reloaded, and re-rendered
// to a new path without re-executing any command.
type Run struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Records     []Record  `json:"records"`
}

// Summary holds the aggregate statistics of a run.
type Summary struct {
	Total       int     `json:"total"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"` // percent, rounded to 2 decimals
}

// Summary computes aggregate statistics. An empty run reports a zero
// success rate rather than dividing by zero.
func (r *Run) Summary() Summary {
	s := Summary{Total: len(r.Records)}
	for _, rec := range r.Records {
		if rec.Succeeded {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = math.Round(float64(s.Succeeded)/float64(s.Total)*100*100) / 100
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d commands: %d succeeded, %d failed (%.2f%% success rate)",
		s.Total, s.Succeeded, s.Failed, s.SuccessRate)
}

// Store persists and retrieves runs.
type Store interface {
	Save(run *Run) error
	Load(runID string) (*Run, error)
}
