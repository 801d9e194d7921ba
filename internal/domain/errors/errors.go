package domainerrors

import "errors"

type DomainError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e DomainError) Error() string { return e.Message }

func New(code, message string, details map[string]interface{}) DomainError {
	return DomainError{Code: code, Message: message, Details: details}
}

var (
	ErrFileNotFound    = DomainError{Code: "FILE_NOT_FOUND", Message: "File not found"}
	ErrFolderNotFound  = DomainError{Code: "FOLDER_NOT_FOUND", Message: "Folder not found"}
	ErrVersionNotFound = DomainError{Code: "VERSION_NOT_FOUND", Message: "Selected version not found"}
	ErrShareNotFound   = DomainError{Code: "SHARE_NOT_FOUND", Message: "Shared item not found"}
	ErrShareExpired    = DomainError{Code: "SHARE_EXPIRED", Message: "The shared item has expired"}
	ErrValidation      = DomainError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	ErrConflict        = DomainError{Code: "CONFLICT", Message: "Concurrent modification detected"}
	ErrInternal        = DomainError{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)

// Validation returns ErrValidation with a specific message.
func Validation(message string, details map[string]interface{}) DomainError {
	return DomainError{Code: ErrValidation.Code, Message: message, Details: details}
}

// CodeOf extracts the domain error code from err, or empty string if
// err is not a DomainError.
func CodeOf(err error) string {
	var derr DomainError
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ""
}

// Is makes sentinel comparison work through wrapped errors by matching
// on the code only.
func (e DomainError) Is(target error) bool {
	t, ok := target.(DomainError)
	return ok && e.Code == t.Code
}
