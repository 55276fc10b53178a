package report

import "fmt"

// Kind enumerates the error taxonomy of spec.md §7.
type Kind int

const (
	KindUnsupportedSyntacticCategory Kind = iota
	KindUnsupportedBinaryOperator
	KindUnsupportedUnaryOperator
	KindTypeMismatch
	KindReadOnlyTarget
	KindUnresolvedSymbol
	KindUnstructuredControlFlow
	KindMalformedFunction
	KindExternSignatureConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedSyntacticCategory:
		return "UnsupportedSyntacticCategory"
	case KindUnsupportedBinaryOperator:
		return "UnsupportedBinaryOperator"
	case KindUnsupportedUnaryOperator:
		return "UnsupportedUnaryOperator"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindReadOnlyTarget:
		return "ReadOnlyTarget"
	case KindUnresolvedSymbol:
		return "UnresolvedSymbol"
	case KindUnstructuredControlFlow:
		return "UnstructuredControlFlow"
	case KindMalformedFunction:
		return "MalformedFunction"
	case KindExternSignatureConflict:
		return "ExternSignatureConflict"
	default:
		return "UnknownError"
	}
}

// Position is the source location of the node that triggered an error.
// It is deliberately minimal: line/column only, since source-map
// generation is an out-of-scope collaborator (spec.md §1).
type Position struct {
	Line, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// CompileError is raised at the deepest point of detection (spec.md §7
// policy) and carries the offending node's Kind, message, and Position.
type CompileError struct {
	Kind     Kind
	Message  string
	Pos      Position
	Function string // name of the enclosing function, filled in by the aggregator
}

func (e *CompileError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s: %s: %s (in %s)", e.Pos, e.Kind, e.Message, e.Function)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

// New constructs a CompileError at the deepest point of detection.
func New(kind Kind, pos Position, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// -----------------------------------------------------------------------------

// FunctionResult is the per-function outcome the Module Assembler
// aggregates errors into (spec.md §7: "errors...propagate to the Module
// Assembler which aggregates them by function. One malformed function
// does not abort other functions' compilation").
type FunctionResult struct {
	Name   string
	Errors []*CompileError
}

func (r FunctionResult) Failed() bool { return len(r.Errors) > 0 }

// Aggregator collects FunctionResults across a whole module compilation
// and decides whether the final artifact should be suppressed (spec.md
// §7: "the final artifact is suppressed if any error occurred").
type Aggregator struct {
	Results []FunctionResult
}

// Record appends a per-function result, stamping the function name onto
// each error it carries (errors are raised before the aggregator knows
// which function they belong to).
func (a *Aggregator) Record(funcName string, errs []*CompileError) {
	for _, e := range errs {
		e.Function = funcName
	}
	a.Results = append(a.Results, FunctionResult{Name: funcName, Errors: errs})
}

// AnyErrors reports whether any recorded function failed.
func (a *Aggregator) AnyErrors() bool {
	for _, r := range a.Results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// AllErrors flattens every error across every function, in recording
// order, for display (DisplaySummary) without needing the caller to walk
// Results itself. The "suppress the final artifact" check uses AnyErrors.
func (a *Aggregator) AllErrors() []*CompileError {
	var out []*CompileError
	for _, r := range a.Results {
		out = append(out, r.Errors...)
	}
	return out
}
