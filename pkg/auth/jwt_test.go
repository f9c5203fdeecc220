package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "memehub",
		Audience:  "memehub-admin",
	})
	require.NoError(t, err)
	return v
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := newTestValidator(t)

	token, err := v.IssueToken("admin-1", []string{"admin"}, time.Minute)
	require.NoError(t, err)

	claims, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestJWTValidator_RejectsExpired(t *testing.T) {
	v := newTestValidator(t)

	token, err := v.IssueToken("admin-1", nil, -time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.Error(t, err)
}

func TestJWTValidator_RejectsWrongSecret(t *testing.T) {
	v := newTestValidator(t)
	other, err := NewJWTValidator(JWTConfig{
		SecretKey: "other-secret",
		Issuer:    "memehub",
		Audience:  "memehub-admin",
	})
	require.NoError(t, err)

	token, err := other.IssueToken("admin-1", nil, time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.Error(t, err)
}

func TestJWTValidator_RejectsWrongAudience(t *testing.T) {
	v := newTestValidator(t)
	issuer, err := NewJWTValidator(JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "memehub",
		Audience:  "some-other-app",
	})
	require.NoError(t, err)

	token, err := issuer.IssueToken("admin-1", nil, time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.Error(t, err)
}

func TestJWTValidator_RejectsGarbage(t *testing.T) {
	v := newTestValidator(t)
	_, err := v.Validate("not.a.token")
	assert.Error(t, err)
}
