package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Args []any `json:"args" validate:"max=2"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"args":["a"]}`))
		var b body
		require.NoError(t, DecodeJSON(req, &b))
		assert.Equal(t, []any{"a"}, b.Args)
		assert.NoError(t, ValidateRequest(b))
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var b body
		require.NoError(t, DecodeJSON(req, &b))
		assert.Nil(t, b.Args)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"args":[`))
		var b body
		assert.Error(t, DecodeJSON(req, &b))
	})

	t.Run("validation failure", func(t *testing.T) {
		assert.Error(t, ValidateRequest(body{Args: []any{1, 2, 3}}))
	})
}
