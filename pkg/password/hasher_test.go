package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashProducesDistinctDigests(t *testing.T) {
	h := NewHasher()
	h.SetCost(bcrypt.MinCost)

	first, err := h.Hash("Sup3rSecret")
	require.NoError(t, err)
	second, err := h.Hash("Sup3rSecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt salts must differ per call")
	assert.True(t, h.Check("Sup3rSecret", first))
	assert.True(t, h.Check("Sup3rSecret", second))
}

func TestCheckRejectsWrongPassword(t *testing.T) {
	h := NewHasher()
	h.SetCost(bcrypt.MinCost)

	digest, err := h.Hash("Sup3rSecret")
	require.NoError(t, err)

	assert.False(t, h.Check("sup3rsecret", digest))
	assert.False(t, h.Check("", digest))
}

func TestCheckStrictDistinguishesMalformedDigest(t *testing.T) {
	h := NewHasher()
	h.SetCost(bcrypt.MinCost)

	digest, err := h.Hash("Sup3rSecret")
	require.NoError(t, err)

	ok, err := h.CheckStrict("Sup3rSecret", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	// Wrong password is a clean mismatch, not an error.
	ok, err = h.CheckStrict("wrong", digest)
	require.NoError(t, err)
	assert.False(t, ok)

	// A corrupt stored digest is an error, not a mismatch.
	ok, err = h.CheckStrict("Sup3rSecret", "not-a-bcrypt-digest")
	assert.Error(t, err)
	assert.False(t, ok)
}
