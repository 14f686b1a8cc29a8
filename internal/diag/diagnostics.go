// Package diag defines the structured diagnostic taxonomy shared by the
// code generator, the simulator, and the asset analyzer.
package diag

import "fmt"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type Stage string

const (
	StageRecord   Stage = "record"
	StageValidate Stage = "validate"
	StageCodegen  Stage = "codegen"
	StageSimulate Stage = "simulate"
	StageAsset    Stage = "asset"
	StageIO       Stage = "io"
)

// Category names the error taxonomy from spec §7.
type Category string

const (
	CategoryUnknownReference Category = "UnknownReference"
	CategoryEmptyAnimation   Category = "EmptyAnimation"
	CategoryUnhandledIR      Category = "UnhandledIR"
	CategoryConfigConflict   Category = "ConfigConflict"
	CategoryDivByZero        Category = "DivByZero"
	CategoryRecorderMissing  Category = "RecorderMissing"
	CategoryPngInvalid       Category = "PngInvalid"
	CategoryTilemapInvalid   Category = "TilemapInvalid"
	CategoryInternal         Category = "InternalCompilerError"
	CategoryIOError          Category = "IOError"
)

type Diagnostic struct {
	Category Category
	Code     string
	Message  string
	Location string // e.g. sprite/pool/scene name the diagnostic concerns
	Severity Severity
	Stage    Stage
	Notes    []string
}

func (d Diagnostic) Error() string {
	if d.Location != "" {
		return fmt.Sprintf("%s: %s", d.Location, d.Message)
	}
	return d.Message
}

// Errorf builds an error-severity diagnostic.
func Errorf(stage Stage, category Category, code, location, format string, args ...any) Diagnostic {
	return Diagnostic{
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
		Severity: SeverityError,
		Stage:    stage,
	}
}

// Warnf builds a warning-severity diagnostic.
func Warnf(stage Stage, category Category, code, location, format string, args ...any) Diagnostic {
	return Diagnostic{
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
		Severity: SeverityWarning,
		Stage:    stage,
	}
}

type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	if e == nil || len(e.Diagnostics) == 0 {
		return "compile failed"
	}
	return e.Diagnostics[0].Error()
}

func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func Filter(diags []Diagnostic, sev Severity) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}
