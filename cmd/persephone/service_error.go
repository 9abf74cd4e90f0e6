// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/persephone/persephone/internal/input"
	"github.com/persephone/persephone/internal/issue"
	"github.com/persephone/persephone/pkg/cueutil"
	"github.com/persephone/persephone/pkg/document"
	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/types"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before formatting the underlying error.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
// All construction sites must use this instead of struct literals.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// fail reports err with its catalog entry and returns the ExitError that
// carries code. The returned error is not printed again.
func (a *App) fail(err error, code types.ExitCode, issueID issue.Id) error {
	if issueID == 0 {
		issueID = issueIDOf(err)
	}
	styled := errorIcon + " " + formatErrorForDisplay(err, a.verbose) + "\n"
	renderServiceError(a.stderr, newServiceError(err, issueID, styled), a.glamourStyle())
	return &ExitError{Code: code}
}

// classifyInputError maps a load failure to its exit code and issue.
func classifyInputError(err error) (types.ExitCode, issue.Id) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return types.ExitFailure, issue.InputNotFoundId
	case errors.Is(err, eagri.ErrInvalidEnumValue):
		return types.ExitInvalidInput, issue.InvalidCodeId
	case errors.Is(err, cueutil.ErrValidation),
		errors.Is(err, cueutil.ErrFileTooLarge),
		errors.Is(err, input.ErrUnsupportedFormat):
		return types.ExitInvalidInput, issue.InputParseFailedId
	case errors.Is(err, types.ErrInvalidSubmissionGUID):
		return types.ExitInvalidInput, 0
	case errors.Is(err, fs.ErrPermission):
		return types.ExitFailure, 0
	default:
		// YAML and TOML syntax errors carry no sentinel.
		return types.ExitInvalidInput, issue.InputParseFailedId
	}
}

// classifyBuildError maps a document build failure to its exit code and issue.
func classifyBuildError(err error) (types.ExitCode, issue.Id) {
	switch {
	case errors.Is(err, eagri.ErrInvalidEnumValue):
		return types.ExitInvalidInput, issue.InvalidCodeId
	case errors.Is(err, document.ErrEncoding):
		return types.ExitInvalidInput, issue.BuildFailedId
	case errors.Is(err, types.ErrInvalidSubmissionGUID):
		return types.ExitInvalidInput, 0
	default:
		return types.ExitFailure, issue.BuildFailedId
	}
}

func issueIDOf(err error) issue.Id {
	if i := issue.IssueOf(err); i != nil {
		return i.Id()
	}
	return 0
}
