package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/job-screening/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(now time.Time) *JWTService {
	s := NewJWTService(&config.JWTConfig{Secret: "test-secret-key", ExpirationHours: 24})
	s.now = func() time.Time { return now }
	return s
}

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := newTestJWTService(now)

	token, err := s.GenerateToken("  recruiter-7 ")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "recruiter-7", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.WithinDuration(t, now.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)

	subject, err := s.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	got, err := subject.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "recruiter-7", got)
}

func TestJWTService_GenerateToken_EmptySubject(t *testing.T) {
	_, err := newTestJWTService(time.Now()).GenerateToken(" ")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	s := newTestJWTService(issued)
	token, err := s.GenerateToken("recruiter-1")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "recruiter-1",
		Issuer:  tokenIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "recruiter-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
	}).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		service *JWTService
		token   string
		wantMsg string
	}{
		{"empty", s, "", "empty"},
		{"malformed", s, "not.a.token", "malformed"},
		{"wrong secret", NewJWTService(&config.JWTConfig{Secret: "other", ExpirationHours: 1}), token, "signature"},
		{"expired", newTestJWTService(issued.Add(25 * time.Hour)), token, "expired"},
		{"alg none", s, none, "signature"},
		{"wrong issuer", s, foreign, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
