package binder

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	DocumentID  string `json:"document_id" validate:"required"`
	RevealValue int    `json:"reveal_value" validate:"gte=0,lte=100"`
	Language    string `json:"language" validate:"langcode"`
}

func bindBody(t *testing.T, body string) (*testPayload, error) {
	t.Helper()

	b, err := New()
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	payload := &testPayload{}
	return payload, b.Bind(payload, c)
}

func TestBindValidPayload(t *testing.T) {
	t.Parallel()

	payload, err := bindBody(t, `{"document_id":"pap-es-001","reveal_value":55,"language":"es"}`)
	require.NoError(t, err)
	assert.Equal(t, "pap-es-001", payload.DocumentID)
	assert.Equal(t, 55, payload.RevealValue)
}

func TestBindUnknownField(t *testing.T) {
	t.Parallel()

	_, err := bindBody(t, `{"document_id":"x","bogus":true}`)
	assert.True(t, errors.Is(err, errcodes.UnknownParameter("bogus")))
}

func TestBindRevealValueOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := bindBody(t, `{"document_id":"x","reveal_value":101}`)
	var e *errcodes.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "validation_error", e.Code)
}

func TestBindBadLanguageCode(t *testing.T) {
	t.Parallel()

	_, err := bindBody(t, `{"document_id":"x","language":"ES1"}`)
	var e *errcodes.Error
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Message, "2-letter language code")
}

func TestBindMissingRequiredField(t *testing.T) {
	t.Parallel()

	_, err := bindBody(t, `{"reveal_value":10}`)
	var e *errcodes.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, `"document_id" is required`, e.Message)
}
