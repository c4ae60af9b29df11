package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidClearance ErrorCode = "INVALID_CLEARANCE"
	ErrCodeInvalidRule      ErrorCode = "INVALID_ACCESS_RULE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	ErrCodeProjectNotFound    ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeProposalNotFound   ErrorCode = "PROPOSAL_NOT_FOUND"
	ErrCodeReportNotFound     ErrorCode = "REPORT_NOT_FOUND"
	ErrCodeEntryNotFound      ErrorCode = "ENTRY_NOT_FOUND"
	ErrCodeLetterNotFound     ErrorCode = "LETTER_NOT_FOUND"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeInvitationNotFound ErrorCode = "INVITATION_NOT_FOUND"

	ErrCodeInsufficientClearance ErrorCode = "INSUFFICIENT_CLEARANCE"
	ErrCodeAlreadyApproved       ErrorCode = "PROPOSAL_ALREADY_APPROVED"
	ErrCodeInvitationUsed        ErrorCode = "INVITATION_ALREADY_USED"
	ErrCodeInvitationExpired     ErrorCode = "INVITATION_EXPIRED"
	ErrCodeSeatOccupied          ErrorCode = "SEAT_OCCUPIED"
	ErrCodeNoSeatAvailable       ErrorCode = "NO_SEAT_AVAILABLE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy so the package-level sentinels stay immutable.
func (e *AppError) WithCause(cause error) *AppError {
	copied := *e
	copied.Cause = cause
	return &copied
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	copied := *e
	copied.Details = details
	return &copied
}

// Is matches AppErrors by code so errors.Is works across WithCause copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrProjectNotFound  = NewNotFoundError("Project not found", ErrCodeProjectNotFound)
	ErrProposalNotFound = NewNotFoundError("Proposal not found", ErrCodeProposalNotFound)
	ErrReportNotFound   = NewNotFoundError("Report not found", ErrCodeReportNotFound)
	ErrEntryNotFound    = NewNotFoundError("Logbook entry not found", ErrCodeEntryNotFound)
	ErrLetterNotFound   = NewNotFoundError("Letter not found", ErrCodeLetterNotFound)
	ErrUserNotFound     = NewNotFoundError("User not found", ErrCodeUserNotFound)

	ErrInsufficientClearance = NewForbiddenError("insufficient clearance", ErrCodeInsufficientClearance)
	ErrAlreadyApproved       = NewConflictError("proposal has already been approved", ErrCodeAlreadyApproved)
	ErrInvalidRule           = NewValidationError("malformed access rule", ErrCodeInvalidRule)
	ErrInvalidStatus         = NewValidationError("invalid status for this operation", ErrCodeInvalidStatus)

	ErrInvitationNotFound = NewNotFoundError("Invitation not found", ErrCodeInvitationNotFound)
	ErrInvitationUsed     = NewConflictError("invitation has already been redeemed", ErrCodeInvitationUsed)
	ErrInvitationExpired  = NewConflictError("invitation has expired", ErrCodeInvitationExpired)
	ErrSeatOccupied       = NewConflictError("seat is already occupied", ErrCodeSeatOccupied)
	ErrNoSeatAvailable    = NewConflictError("no covenant seat available", ErrCodeNoSeatAvailable)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
