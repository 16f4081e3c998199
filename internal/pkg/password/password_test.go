package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, Verify(hash, "correct horse battery"))
}

func TestVerifyWrongPassword(t *testing.T) {
	hash, err := Hash("correct horse battery")
	require.NoError(t, err)

	assert.ErrorIs(t, Verify(hash, "wrong"), ErrMismatch)
}

func TestVerifyMalformedHash(t *testing.T) {
	err := Verify("not-a-bcrypt-hash", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
