package cec

import "fmt"

// Severity grades a diagnostic. Chat and Note are informational.
type Severity string

const (
	SeverityChat Severity = "chat"
	SeverityNote Severity = "note"
	SeverityWarn Severity = "warn"
)

// DiagnosticKind names the anomaly a diagnostic reports.
type DiagnosticKind string

const (
	DiagPoll         DiagnosticKind = "cec.poll"
	DiagFeatureAbort DiagnosticKind = "cec.feature_abort"
	DiagExtraBytes   DiagnosticKind = "cec.extra_bytes"
)

// Diagnostic is an annotation attached to a decoded frame. It never changes
// the structural decode.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Kind     DiagnosticKind `json:"kind"`
	Message  string         `json:"message"`

	// Extra is the trailing byte count for DiagExtraBytes.
	Extra int `json:"extra,omitempty"`
}

func (d Diagnostic) IsWarning() bool {
	return d.Severity == SeverityWarn
}

func diagnose(f *DecodedFrame) []Diagnostic {
	var out []Diagnostic
	if f.Length == 1 {
		out = append(out, Diagnostic{
			Severity: SeverityChat,
			Kind:     DiagPoll,
			Message:  "Poll for " + f.Destination.String(),
		})
	}
	if f.Opcode != nil && *f.Opcode == OpFeatureAbort {
		out = append(out, Diagnostic{
			Severity: SeverityNote,
			Kind:     DiagFeatureAbort,
			Message:  "Feature Abort",
		})
	}
	if extra := f.Extra(); extra > 0 {
		out = append(out, Diagnostic{
			Severity: SeverityWarn,
			Kind:     DiagExtraBytes,
			Message:  fmt.Sprintf("Extra %d bytes in packet", extra),
			Extra:    extra,
		})
	}
	return out
}
