// Package validator runs the semantic checks over a parsed game model.
// Checks never stop early and never fail: Validate always returns the full
// list of diagnostics, and the caller decides what an error blocks.
package validator

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/othellodsl/othelloc/game"
)

// MinInitialCells is the smallest initial placement a variant may declare.
const MinInitialCells = 4

// TimerParameter is the run-time parameter holding the per-move timer.
const TimerParameter = "timer"

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single finding. Node is the model element it concerns;
// mapping it to a file position is up to the reader that built the model.
type Diagnostic struct {
	Severity Severity
	Message  string
	Node     game.Node
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Format renders the diagnostic as path:line:col: severity: message. The
// position part is omitted when the node location is unknown.
func Format(path string, d Diagnostic) string {
	if d.Node != nil {
		if loc := d.Node.Location(); !loc.IsZero() {
			return fmt.Sprintf("%s:%s: %s", path, loc, d)
		}
	}
	return fmt.Sprintf("%s: %s", path, d)
}

func errorAt(n game.Node, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...), Node: n}
}

func warningAt(n game.Node, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Node: n}
}

// Rule is one independent check.
type Rule func(g *game.Game) []Diagnostic

// rules run in this order; each sees the same immutable model.
var rules = []Rule{
	checkBoardSize,
	checkTimer,
	checkPlayers,
	checkInitialCount,
	checkPlacements,
}

// Validate runs every rule and concatenates their diagnostics.
func Validate(g *game.Game) []Diagnostic {
	var diags []Diagnostic
	for _, rule := range rules {
		diags = append(diags, rule(g)...)
	}
	return diags
}

func HasErrors(diags []Diagnostic) bool {
	return lo.SomeBy(diags, func(d Diagnostic) bool { return d.Severity == SeverityError })
}

func Errors(diags []Diagnostic) []Diagnostic {
	return lo.Filter(diags, func(d Diagnostic, _ int) bool { return d.Severity == SeverityError })
}

func Warnings(diags []Diagnostic) []Diagnostic {
	return lo.Filter(diags, func(d Diagnostic, _ int) bool { return d.Severity == SeverityWarning })
}

// ErrInvalidModel is returned by Check when validation reports errors.
var ErrInvalidModel = errors.New("validation failed")

// Check is nil when diags hold no errors, and otherwise an error counting
// them. Warnings never make a model invalid.
func Check(diags []Diagnostic) error {
	n := len(Errors(diags))
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d error(s)", ErrInvalidModel, n)
}
