package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(subject), nil
}

type testClaims string

func (c testClaims) GetSubject() (string, error) { return string(c), nil }

func newProtected(t *testing.T) http.Handler {
	t.Helper()
	validator := &testTokenValidator{validTokens: map[string]string{"good-token": "recruiter-1", "no-subject": ""}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := GetSubject(r)
		if err != nil {
			subject = "anonymous"
		}
		_, _ = w.Write([]byte(subject))
	})
	return AuthMiddleware(validator, "/health")(next)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "valid token", method: "GET", path: "/jobs/1", header: "Bearer good-token", wantCode: 200, wantBody: "recruiter-1"},
		{name: "lowercase scheme", method: "GET", path: "/jobs/1", header: "bearer good-token", wantCode: 200, wantBody: "recruiter-1"},
		{name: "missing header", method: "GET", path: "/jobs/1", wantCode: 401},
		{name: "wrong scheme", method: "GET", path: "/jobs/1", header: "Basic good-token", wantCode: 401},
		{name: "no token", method: "GET", path: "/jobs/1", header: "Bearer", wantCode: 401},
		{name: "extra parts", method: "GET", path: "/jobs/1", header: "Bearer good-token extra", wantCode: 401},
		{name: "invalid token", method: "GET", path: "/jobs/1", header: "Bearer bad-token", wantCode: 401},
		{name: "empty subject", method: "GET", path: "/jobs/1", header: "Bearer no-subject", wantCode: 401},
		{name: "public path", method: "GET", path: "/health", wantCode: 200, wantBody: "anonymous"},
		{name: "preflight", method: "OPTIONS", path: "/jobs", wantCode: 200, wantBody: "anonymous"},
	}

	handler := newProtected(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusUnauthorized {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "unauthorized", resp["error"])
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				return
			}
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestGetSubject_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)

	req = req.WithContext(WithSubject(req.Context(), "alice"))
	subject, err := GetSubject(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}
