// Package simulate executes the command catalog and classifies each
// outcome into a result record. All decision logic of the simulator
// lives here; execution and reporting are collaborators.
package simulate

import (
	"strings"

	"github.com/noxsec/attacksim/internal/runner"
)

// BlockedSentinel replaces the raw vendor text when an AV/EDR block is
// detected, normalizing a noisy message into a stable category label.
const BlockedSentinel = "ERROR MESSAGE: Blocked By EDR"

// Built-in failure signatures. Classification is substring matching
// against captured output only; there is no real AV/EDR integration.
var (
	defaultAccessDenied = []string{"failed to run: Access is denied"}
	defaultBlocked      = []string{"blocked by your antivirus software"}
)

// Classifier turns a raw execution outcome into succeeded/failed plus
// an error message. Pattern tables are open for extension so a new AV
// product's block message is a configuration change.
type Classifier struct {
	accessDenied []string
	blocked      []string
}

// NewClassifier builds a Classifier with the built-in signatures plus
// any configured extras.
func NewClassifier(extraAccessDenied, extraBlocked []string) *Classifier {
	return &Classifier{
		accessDenied: append(append([]string{}, defaultAccessDenied...), extraAccessDenied...),
		blocked:      append(append([]string{}, defaultBlocked...), extraBlocked...),
	}
}

// Classify maps one execution outcome to (succeeded, errorMessage).
// Exactly one of res and execErr is set: res when the process ran to
// completion, execErr when the execution layer itself faulted.
//
// The checks are ordered and first-match-wins. The exit-code and
// access-denied check deliberately precedes the AV-block check, so
// blocked output that also carries a nonzero exit code keeps its raw
// text instead of the sentinel. That priority mirrors the observed
// behavior and is pending product-owner confirmation; do not reorder.
func (c *Classifier) Classify(res *runner.ExecResult, execErr error) (succeeded bool, errorMessage string) {
	if res != nil {
		out := string(res.Output)
		if res.ExitCode != 0 || containsAny(out, c.accessDenied) {
			// The full captured text, which may legitimately be empty
			// when the command failed silently.
			return false, out
		}
		if containsAny(out, c.blocked) {
			return false, BlockedSentinel
		}
		return true, ""
	}
	if execErr != nil {
		return false, execErr.Error()
	}
	return true, ""
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
