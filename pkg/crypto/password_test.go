package crypto

import (
	"errors"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("secret1", "not-a-hash"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashPassword_Error(t *testing.T) {
	orig := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	defer func() { bcryptGenerateFromPassword = orig }()

	_, err := HashPassword("secret1")
	assert.ErrorContains(t, err, "failed to hash password")
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(16)
	require.NoError(t, err)
	assert.Len(t, token, 32)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), token)

	other, err := GenerateRandomToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateRandomToken_Error(t *testing.T) {
	orig := randomRead
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("entropy exhausted")
	}
	defer func() { randomRead = orig }()

	_, err := GenerateRandomToken(16)
	assert.ErrorContains(t, err, "failed to generate random token")
}

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateVerificationCode_Error(t *testing.T) {
	orig := randomInt
	randomInt = func(io.Reader, *big.Int) (*big.Int, error) {
		return nil, errors.New("entropy exhausted")
	}
	defer func() { randomInt = orig }()

	_, err := GenerateVerificationCode()
	assert.ErrorContains(t, err, "failed to generate verification code")
}
