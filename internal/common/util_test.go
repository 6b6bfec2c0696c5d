package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)

	_, err = hex.DecodeString(s)
	require.NoError(t, err)

	empty, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGenerateRandByteArray_Length(t *testing.T) {
	assert.Len(t, GenerateRandByteArray(24), 24)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0}, buf)

	WipeByteArray(nil)
}
