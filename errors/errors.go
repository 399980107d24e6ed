package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
)

// Process exit codes reported by the CLI.
const (
	ExitFailure      = 1
	ExitUsage        = 2
	ExitPrecondition = 3
)

// AppError represents application error
type AppError struct {
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	ExitCode int                    `json:"-"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Err      error                  `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Details) > 0 {
		msg = fmt.Sprintf("%s %s", msg, formatDetails(e.Details))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so wrapped sentinels
// compare equal with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code, message string, exitCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		ExitCode: exitCode,
	}
}

// Wrap wraps an error with AppError
func Wrap(err error, code, message string, exitCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		ExitCode: exitCode,
		Err:      err,
	}
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithErr returns a copy of e wrapping err.
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// Common errors
var (
	// Precondition failures
	ErrProjectExists = New("project_exists", "project directory already exists", ExitPrecondition)

	// Usage errors
	ErrValidation = New("validation_error", "validation failed", ExitUsage)
	ErrConfig     = New("config_error", "invalid configuration", ExitUsage)

	// Runtime failures
	ErrExternalTool = New("external_tool_failed", "external tool failed", ExitFailure)
	ErrFilesystem   = New("filesystem_error", "filesystem write failed", ExitFailure)
	ErrVCS          = New("vcs_error", "git step failed", ExitFailure)
	ErrToolchain    = New("toolchain_unsupported", "cargo toolchain is not supported", ExitFailure)
)

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError returns AppError or creates one from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal_error", "internal error", ExitFailure)
}

// ExitCode returns the process exit status for err. A nil error maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code := GetAppError(err).ExitCode; code != 0 {
		return code
	}
	return ExitFailure
}

func formatDetails(details map[string]interface{}) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := "("
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%v", k, details[k])
	}
	return out + ")"
}
