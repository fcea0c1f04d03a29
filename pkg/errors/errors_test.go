package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrConflict, "slug already exists"))

	got := FromError(wrapped)

	assert.Equal(t, ErrConflict.Code, got.Code)
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, "slug already exists", got.Message)
}

func TestFromErrorWrapsUnknownAsInternal(t *testing.T) {
	got := FromError(sql.ErrConnDone)

	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, sql.ErrConnDone)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "college not found")

	assert.Equal(t, "college not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.Nil(t, FromError(nil))
}

func TestConflictCodesAreDistinct(t *testing.T) {
	for _, e := range []*Error{ErrSlugTaken, ErrEmailTaken, ErrAlreadyLinked} {
		assert.Equal(t, http.StatusConflict, e.Status)
		assert.NotEqual(t, ErrConflict.Code, e.Code)
	}
	assert.Equal(t, http.StatusNotFound, ErrUnknownListing.Status)
}
