package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/quiz-service/internal/errors"
	"github.com/SAP-F-2025/quiz-service/internal/generation"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Quiz specific errors
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrGenerationFailed  = errors.New("quiz generation failed")
	ErrNoQuestions       = errors.New("generative service returned no questions")
	ErrInvalidQuestions  = errors.New("generative service returned invalid questions")
	ErrQuizNotPublic     = errors.New("quiz is not public")
	ErrCannotRateOwnQuiz = errors.New("cannot rate your own quiz")

	// Attempt specific errors
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptAccessDenied = errors.New("access denied to attempt")

	// Rating specific errors
	ErrRatingNotFound = errors.New("rating not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ConflictError reports a request that violates a domain policy
type ConflictError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	Err     error                  `json:"-"`
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("conflict (%s): %s", ce.Rule, ce.Message)
}

func (ce *ConflictError) Unwrap() error {
	return ce.Err
}

// UpstreamError aliases the generation pipeline's error
type UpstreamError = generation.UpstreamError

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewConflictError(rule string, err error, context map[string]interface{}) *ConflictError {
	return &ConflictError{
		Rule:    rule,
		Message: err.Error(),
		Context: context,
		Err:     err,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrRatingNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the caller lacks access to an existing resource
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrAttemptAccessDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a policy conflict
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce) || errors.Is(err, ErrConflict)
}

// IsUpstream checks if error came from the generative service pipeline
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) ||
		errors.Is(err, ErrGenerationFailed)
}
