package jwt

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	id := uuid.New()

	token, err := svc.GenerateToken(id, "alice@mail.com", "lawyer", true)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AccountID)
	assert.Equal(t, "alice@mail.com", claims.Email)
	assert.Equal(t, "lawyer", claims.Role)
	assert.True(t, claims.IsAdmin)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "alice@mail.com", "user", false)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken(uuid.New(), "a@mail.com", "user", false)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsNonHMACAlg(t *testing.T) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, &Claims{
		AccountID: uuid.New(),
	})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_SignError(t *testing.T) {
	orig := signJWTToken
	signJWTToken = func(*gojwt.Token, []byte) (string, error) {
		return "", errors.New("sign failed")
	}
	defer func() { signJWTToken = orig }()

	_, err := NewJWTService("test-secret", time.Hour).GenerateToken(uuid.New(), "a@mail.com", "user", false)
	assert.EqualError(t, err, "sign failed")
}
