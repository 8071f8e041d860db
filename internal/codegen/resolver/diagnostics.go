package resolver

import "fmt"

// DiagnosticKind classifies recoverable resolution problems.
type DiagnosticKind int

const (
	// UnrecognizedTypeShape: a type node the resolver cannot model; the
	// occurrence degrades to the dynamic type.
	UnrecognizedTypeShape DiagnosticKind = iota
	// UnresolvedReference: an extends entry naming no registered structure.
	UnresolvedReference
	// DuplicateRegistration: a declaration registered twice; last write wins.
	DuplicateRegistration
	// UnmappedUnion: a multi-way union without a resolution table entry.
	UnmappedUnion
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnrecognizedTypeShape:
		return "unrecognized-type-shape"
	case UnresolvedReference:
		return "unresolved-reference"
	case DuplicateRegistration:
		return "duplicate-registration"
	case UnmappedUnion:
		return "unmapped-union"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic is one recorded problem. Subject names the declaration or
// property it concerns, e.g. "Hover.contents".
type Diagnostic struct {
	Kind    DiagnosticKind
	Subject string
	Detail  string
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return d.Kind.String() + ": " + d.Subject
	}
	return d.Kind.String() + ": " + d.Subject + ": " + d.Detail
}

// Summary counts what a resolver run produced.
type Summary struct {
	Structures   int
	Enumerations int
	Methods      int
	Diagnostics  map[DiagnosticKind]int
}

// LogArgs flattens the summary into slog key/value pairs.
func (s Summary) LogArgs() []any {
	args := []any{
		"structures", s.Structures,
		"enumerations", s.Enumerations,
		"methods", s.Methods,
	}
	for k := UnrecognizedTypeShape; k <= UnmappedUnion; k++ {
		if n := s.Diagnostics[k]; n > 0 {
			args = append(args, k.String(), n)
		}
	}
	return args
}
