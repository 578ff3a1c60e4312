// Package error defines domain-specific errors for the Sales Dashboard application.
package error

import (
	"errors"
	"strings"
)

// Upload and ingestion domain errors.
var (
	// ErrMissingColumns is returned when date, product or quantity cannot be resolved from the headers.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrMissingPriceOrTotal is returned when no price- or total-bearing header exists.
	ErrMissingPriceOrTotal = errors.New("missing price or total column")

	// ErrInvalidDateOrQuantity is returned when a date or quantity cell cannot be parsed.
	ErrInvalidDateOrQuantity = errors.New("invalid date or quantity format")

	// ErrColumnMappingFailure is returned when normalized headers lack a required column.
	ErrColumnMappingFailure = errors.New("column mapping failed")

	// ErrProcessingFailure is returned for unexpected faults while reading or coercing a file.
	ErrProcessingFailure = errors.New("processing failed")

	// ErrNoFileSelected is returned when the request carries no file.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrInvalidFileType is returned when the file extension is not accepted.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrFileTooLarge is returned when the uploaded file exceeds the size bound.
	ErrFileTooLarge = errors.New("file too large")

	// ErrUploadNotFound is returned when an upload does not exist.
	ErrUploadNotFound = errors.New("upload not found")

	// ErrUploadForbidden is returned when a user accesses an upload owned by someone else.
	ErrUploadForbidden = errors.New("upload belongs to another user")
)

// UploadErrorCode defines error codes for upload errors.
// Format: UPL-XXYYYY where XX is category and YYYY is specific error.
type UploadErrorCode string

const (
	// Ingestion rejections (01XXXX)
	ErrCodeMissingColumns        UploadErrorCode = "UPL-010001"
	ErrCodeMissingPriceOrTotal   UploadErrorCode = "UPL-010002"
	ErrCodeInvalidDateOrQuantity UploadErrorCode = "UPL-010003"
	ErrCodeColumnMappingFailure  UploadErrorCode = "UPL-010004"

	// File errors (02XXXX)
	ErrCodeNoFileSelected  UploadErrorCode = "UPL-020001"
	ErrCodeInvalidFileType UploadErrorCode = "UPL-020002"
	ErrCodeFileTooLarge    UploadErrorCode = "UPL-020003"

	// Access errors (03XXXX)
	ErrCodeUploadNotFound  UploadErrorCode = "UPL-030001"
	ErrCodeUploadForbidden UploadErrorCode = "UPL-030002"

	// Internal errors (99XXXX)
	ErrCodeProcessingFailure UploadErrorCode = "UPL-990001"
)

// UploadError represents an upload error with code and message.
// Message is safe to show to the uploader verbatim.
type UploadError struct {
	Code    UploadErrorCode
	Message string
	// Fields lists the missing canonical columns for ErrCodeMissingColumns.
	Fields  []string
	Err     error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UploadError) Unwrap() error {
	return e.Err
}

// NewUploadError creates a new UploadError with the given code and message.
func NewUploadError(code UploadErrorCode, message string, err error) *UploadError {
	return &UploadError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewMissingColumnsError creates the rejection for unresolved required columns.
func NewMissingColumnsError(fields []string) *UploadError {
	return &UploadError{
		Code:    ErrCodeMissingColumns,
		Message: "Missing required columns: " + strings.Join(fields, ", "),
		Fields:  fields,
		Err:     ErrMissingColumns,
	}
}

// NewProcessingFailure wraps an unexpected fault without exposing its details in Message.
func NewProcessingFailure(err error) *UploadError {
	return &UploadError{
		Code:    ErrCodeProcessingFailure,
		Message: "Processing failed",
		Err:     errors.Join(ErrProcessingFailure, err),
	}
}
