package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// BadAttachment marks an attachment that cannot enter the pipeline, such as a
// document without a filename.
func BadAttachment(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_ATTACHMENT",
		Message: message,
		Err:     err,
	}
}

// UploadFailed normalizes a storage provider failure. Status carries the
// provider's HTTP status when one was returned, zero otherwise.
func UploadFailed(status int, reason string, err error) *AppError {
	message := reason
	if status != 0 {
		message = fmt.Sprintf("Drive API error: %d - %s", status, reason)
	}
	return &AppError{
		Code:    "UPLOAD_FAILED",
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Internal covers local failures outside the provider's control, such as the
// temp file disappearing before the upload could read it.
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
