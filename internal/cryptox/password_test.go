package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPasswordWithParams([]byte("secret1"), fastParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$argon2id$v=19$t=1,m=8192,p=1$"))

	ok, err := VerifyPassword([]byte("secret1"), h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword([]byte("secret2"), h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPasswordWithParams([]byte("same"), fastParams)
	require.NoError(t, err)
	b, err := HashPasswordWithParams([]byte("same"), fastParams)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPasswordWithParams_InvalidParams(t *testing.T) {
	_, err := HashPasswordWithParams([]byte("x"), Params{Time: 1, Memory: 1024, Threads: 1})
	require.Error(t, err)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$t=1,m=8192,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$t=1,m=8192,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$t=1,m=8192,p=1$!!!$a2V5",
		"$argon2id$v=19$t=1,m=64,p=1$c2FsdHNhbHQ$",
		"$argon2id$v=19$t=1,m=64,p=1$$a2V5a2V5",
		"$argon2id$v=19$t=0,m=64,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$t=1,m=64,p=0$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$t=1,m=4294967295,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$t=100000,m=64,p=1$c2FsdHNhbHQ$a2V5a2V5",
	}
	for _, in := range tests {
		_, err := VerifyPassword([]byte("x"), in)
		require.ErrorIs(t, err, ErrMalformedHash, "input %q", in)
	}
}
