// AngelaMos | 2026
// opstoken_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opsRequest(t *testing.T, token, header string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	RequireOpsToken(token)(next).ServeHTTP(rec, req)

	return rec
}

func TestRequireOpsTokenAccepts(t *testing.T) {
	rec := opsRequest(t, "s3cret", "Bearer s3cret")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireOpsTokenRejectsWrongToken(t *testing.T) {
	rec := opsRequest(t, "s3cret", "Bearer nope")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireOpsTokenRejectsMissingHeader(t *testing.T) {
	rec := opsRequest(t, "s3cret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = opsRequest(t, "s3cret", "Basic s3cret")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// An unset token hides the surface entirely rather than failing open.
func TestRequireOpsTokenUnsetHidesRoutes(t *testing.T) {
	rec := opsRequest(t, "", "Bearer anything")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
