package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenResetToken(t *testing.T) {
	raw, hash, err := GenResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 2*resetTokenBytes)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashResetToken(raw))
	assert.NotEqual(t, raw, hash)

	raw2, _, err := GenResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CompareHashAndPassword(hash, "s3cret!"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "s3cret!"))
}
