package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsMatchByCode(t *testing.T) {
	detailed := Validation("Folder name is required", map[string]interface{}{"field": "name"})

	assert.ErrorIs(t, detailed, ErrValidation)
	assert.NotErrorIs(t, detailed, ErrFileNotFound)
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("saving file: %w", ErrConflict)

	assert.ErrorIs(t, wrapped, ErrConflict)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrShareExpired.Code, CodeOf(ErrShareExpired))
	assert.Empty(t, CodeOf(errors.New("plain")))
}
