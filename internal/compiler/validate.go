package compiler

import (
	"fmt"

	"github.com/roach88/sortflow/internal/ir"
)

// Validation error codes (E100-E199)
const (
	// Graph errors (E101-E109)
	ErrMissingEntry         = "E101" // entry workflow not declared
	ErrEmptyWorkflow        = "E102" // workflow has no rules
	ErrMissingFallback      = "E103" // last rule is not unconditional
	ErrUnreachableRule      = "E104" // unconditional rule before the end
	ErrTerminalName         = "E105" // workflow named A or R
	ErrWorkflowNameMismatch = "E106" // map key differs from workflow name

	// Rule errors (E110-E129)
	ErrUnknownDestination = "E110" // destination is neither a workflow nor a terminal
	ErrUnknownAttribute   = "E120" // attribute outside x, m, a, s
	ErrUnknownComparator  = "E121" // comparator other than < or >
)

// ValidationError represents a structural problem in a workflow graph.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a graph before it is handed to the engine.
// Returns all errors found (does not fail-fast), in workflow name order.
func Validate(g ir.Graph) []ValidationError {
	var errs []ValidationError

	entry := g.EntryLabel()
	if _, ok := g.Lookup(entry); !ok {
		errs = append(errs, ValidationError{
			Field:   "entry",
			Message: fmt.Sprintf("entry workflow %q is not declared", entry),
			Code:    ErrMissingEntry,
		})
	}

	for _, name := range g.Labels() {
		errs = append(errs, validateWorkflow(g, name, g.Workflows[name])...)
	}

	return errs
}

func validateWorkflow(g ir.Graph, key string, wf ir.Workflow) []ValidationError {
	var errs []ValidationError
	field := "workflow." + key

	if wf.Name != key {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("registered as %q but named %q", key, wf.Name),
			Code:    ErrWorkflowNameMismatch,
		})
	}

	if ir.IsTerminal(key) {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is a reserved terminal label", key),
			Code:    ErrTerminalName,
		})
	}

	if len(wf.Rules) == 0 {
		return append(errs, ValidationError{
			Field:   field,
			Message: "workflow has no rules",
			Code:    ErrEmptyWorkflow,
		})
	}

	last := len(wf.Rules) - 1
	for i, rule := range wf.Rules {
		ruleField := fmt.Sprintf("%s.rules[%d]", field, i)

		switch r := rule.(type) {
		case ir.Conditional:
			if !r.Axis.Valid() {
				errs = append(errs, ValidationError{
					Field:   ruleField,
					Message: fmt.Sprintf("unknown attribute %s", r.Axis),
					Code:    ErrUnknownAttribute,
				})
			}
			if r.Op != ir.Less && r.Op != ir.Greater {
				errs = append(errs, ValidationError{
					Field:   ruleField,
					Message: fmt.Sprintf("unknown comparator %s", r.Op),
					Code:    ErrUnknownComparator,
				})
			}
			if i == last {
				errs = append(errs, ValidationError{
					Field:   ruleField,
					Message: "last rule must be unconditional",
					Code:    ErrMissingFallback,
				})
			}
		case ir.Unconditional:
			if i != last {
				errs = append(errs, ValidationError{
					Field:   ruleField,
					Message: fmt.Sprintf("unconditional rule makes the %d rule(s) after it unreachable", last-i),
					Code:    ErrUnreachableRule,
				})
			}
		default:
			errs = append(errs, ValidationError{
				Field:   ruleField,
				Message: fmt.Sprintf("unsupported rule type %T", rule),
				Code:    ErrMissingFallback,
			})
			continue
		}

		dest := rule.Target()
		if ir.IsTerminal(dest) {
			continue
		}
		if _, ok := g.Lookup(dest); !ok {
			errs = append(errs, ValidationError{
				Field:   ruleField,
				Message: fmt.Sprintf("destination %q is neither a workflow nor a terminal", dest),
				Code:    ErrUnknownDestination,
			})
		}
	}

	return errs
}
