package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeExtractionFailed  = "EXTRACTION_FAILED"
	ErrCodeEmbeddingUnavail  = "EMBEDDING_UNAVAILABLE"
	ErrCodeRetrievalError    = "RETRIEVAL_ERROR"
	ErrCodeInsertBatchFailed = "INSERT_BATCH_FAILED"
	ErrCodeGenerationFailed  = "GENERATION_FAILED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Pipeline errors. The taxonomy mirrors how each failure is absorbed:
// extraction failures skip one document, embedding failures abort the
// current operation, retrieval failures degrade to "no matches", a failed
// insert batch halts the remaining batches, and generation failures
// surface as an ERROR-mode answer.
var (
	// ErrExtractionFailed marks a document whose text could not be
	// extracted. Per-document, non-fatal: the ingestion run continues.
	ErrExtractionFailed = NewDomainError(ErrCodeExtractionFailed, "failed to extract text from document")
	// ErrEmbeddingUnavailable marks an embedding model failure. Fatal to
	// the current ingestion or query operation.
	ErrEmbeddingUnavailable = NewDomainError(ErrCodeEmbeddingUnavail, "embedding model unavailable")
	// ErrRetrievalService marks a similarity-search service failure.
	// Downgraded to an empty match set by the retrieval service.
	ErrRetrievalService = NewDomainError(ErrCodeRetrievalError, "similarity search service failed")
	// ErrInsertBatchFailed marks a failed bulk-insert batch. Halts the
	// remaining batches; partial completion is reported.
	ErrInsertBatchFailed = NewDomainError(ErrCodeInsertBatchFailed, "failed to insert chunk batch")
	// ErrGenerationFailed marks an LLM generation failure. Surfaced as a
	// fixed error message with AnswerModeError, never retried.
	ErrGenerationFailed = NewDomainError(ErrCodeGenerationFailed, "failed to generate answer")
)

// Validation errors
var (
	ErrEmptyQuestion = NewDomainError(ErrCodeValidation, "question cannot be empty")
	ErrInvalidAPIKey = NewDomainError(ErrCodeUnauthorized, "invalid api key")
)
