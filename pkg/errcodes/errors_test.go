package errcodes

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundIs(t *testing.T) {
	t.Parallel()

	err := errors.WithStack(NotFound("Document"))
	assert.True(t, errors.Is(err, NotFound("Document")))
	assert.False(t, errors.Is(err, NotFound("Book")))
}

func TestTranslationMissing(t *testing.T) {
	t.Parallel()

	var e *Error
	err := errors.Wrap(TranslationMissing("de"), "resolving composite id")
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, http.StatusNotFound, e.HTTPCode)
	assert.Equal(t, "translation_missing", e.Code)
}

func TestFetchFailed(t *testing.T) {
	t.Parallel()

	var e *Error
	assert.True(t, errors.As(FetchFailed("catalog"), &e))
	assert.Equal(t, http.StatusBadGateway, e.HTTPCode)
	assert.Equal(t, "Failed to fetch catalog.", e.Message)
}
