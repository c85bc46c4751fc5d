package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Qhoar2026!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Qhoar2026!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(16)
	assert.NoError(t, err)
	assert.Len(t, token, 32)

	verifyToken, err := GenerateVerificationToken()
	assert.NoError(t, err)
	assert.Len(t, verifyToken, 32)
	assert.NotEqual(t, token, verifyToken)
}

func TestGenerateObjectKey(t *testing.T) {
	key, err := GenerateObjectKey("Foto Local.JPG")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Len(t, key, 24+4)

	other, err := GenerateObjectKey("Foto Local.JPG")
	assert.NoError(t, err)
	assert.NotEqual(t, key, other)

	bare, err := GenerateObjectKey("noext")
	assert.NoError(t, err)
	assert.Len(t, bare, 24)

	trailing, err := GenerateObjectKey("weird.")
	assert.NoError(t, err)
	assert.Len(t, trailing, 24)
}

func TestHashPasswordAndGenerateRandomToken_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Qhoar2026!")
	assert.Error(t, err)

	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateRandomToken(16)
	assert.Error(t, err)
	_, err = GenerateObjectKey("a.png")
	assert.Error(t, err)
}
