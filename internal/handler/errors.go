package handler

import (
	"errors"
	"net/http"

	domainerrors "file-vault/internal/domain/errors"
)

// statusForCode maps domain error codes onto HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case domainerrors.ErrFileNotFound.Code,
		domainerrors.ErrFolderNotFound.Code,
		domainerrors.ErrVersionNotFound.Code,
		domainerrors.ErrShareNotFound.Code:
		return http.StatusNotFound
	case domainerrors.ErrValidation.Code:
		return http.StatusBadRequest
	case domainerrors.ErrShareExpired.Code:
		return http.StatusGone
	case domainerrors.ErrConflict.Code:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError renders an error from the application layer. Unknown
// errors are masked behind a generic message so internals never leak.
func writeDomainError(w http.ResponseWriter, err error) {
	var de domainerrors.DomainError
	if errors.As(err, &de) {
		writeJSONResponse(w, statusForCode(de.Code), Response{
			Success: false,
			Error:   de.Message,
			Data:    nonEmptyDetails(de.Details),
		})
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}

func nonEmptyDetails(details map[string]interface{}) interface{} {
	if len(details) == 0 {
		return nil
	}
	return details
}
