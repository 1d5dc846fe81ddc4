package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKey_Valid(t *testing.T) {
	cases := []string{"MPT", "CORE01", "AB1234", "ABCDEF"}
	for _, key := range cases {
		p := &Project{Key: key}
		assert.NoError(t, p.ValidateKey(), "should accept %q", key)
	}
}

func TestValidateKey_Empty(t *testing.T) {
	p := &Project{}
	err := p.ValidateKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateKey_Lowercase(t *testing.T) {
	p := &Project{Key: "mpt01"}
	err := p.ValidateKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "MPT", (&Project{ID: 3, Key: "MPT"}).DisplayID())
	assert.Equal(t, "3", (&Project{ID: 3}).DisplayID())
}
