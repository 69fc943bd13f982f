package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external service error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Disposition says what a pipeline should do with the unit of work that
// failed.
type Disposition string

const (
	// DispositionDrop skips the row or video and keeps going.
	DispositionDrop Disposition = "drop"
	// DispositionRetry leaves the work for the next resumed run.
	DispositionRetry Disposition = "retry"
	// DispositionAbort stops the command.
	DispositionAbort Disposition = "abort"
)

// kinded is implemented by typed errors from the engine packages.
type kinded interface {
	ErrorKind() string
}

// FailureDisposition maps an error to the action the caller should take.
func FailureDisposition(err error) Disposition {
	switch {
	case err == nil:
		return DispositionAbort
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return DispositionDrop
	case errors.Is(err, ErrTransient), errors.Is(err, ErrTimeout), errors.Is(err, ErrExternalTool):
		return DispositionRetry
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrQuotaExceeded):
		return DispositionAbort
	}
	var k kinded
	if errors.As(err, &k) && k.ErrorKind() == "malformed_input" {
		return DispositionDrop
	}
	return DispositionAbort
}

// ErrorKind returns a short classification for logging.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrExternalTool):
		return "external"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
