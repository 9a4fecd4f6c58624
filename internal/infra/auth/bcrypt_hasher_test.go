package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	match, err := hasher.Check("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestBcryptHasher_MismatchIsNotAnError(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	match, err := hasher.Check("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestBcryptHasher_MalformedHashIsAnError(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	match, err := hasher.Check("hunter2", "not-a-bcrypt-hash")
	assert.False(t, match)
	assert.Error(t, err)
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	second, err := hasher.Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
