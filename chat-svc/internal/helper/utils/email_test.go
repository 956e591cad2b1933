package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmailDomain(t *testing.T) {
	d, err := ExtractEmailDomain(" Oski@Berkeley.EDU ")
	require.NoError(t, err)
	assert.Equal(t, "berkeley.edu", d)

	for _, bad := range []string{"", "oski", "@berkeley.edu", "oski@", "a@b@c"} {
		_, err := ExtractEmailDomain(bad)
		assert.Error(t, err, bad)
	}
}

func TestEmailInDomain(t *testing.T) {
	assert.True(t, EmailInDomain("oski@berkeley.edu", "berkeley.edu"))
	assert.True(t, EmailInDomain("oski@berkeley.edu", "@Berkeley.edu"))
	assert.False(t, EmailInDomain("oski@stanford.edu", "berkeley.edu"))
	assert.False(t, EmailInDomain("oski@eecs.berkeley.edu", "berkeley.edu"))
	assert.False(t, EmailInDomain("oski@berkeley.edu", ""))
}
