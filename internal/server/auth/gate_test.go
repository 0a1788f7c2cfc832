package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"zorgkaart/internal/common"
)

func TestGateCheck(t *testing.T) {
	digest, err := bcrypt.GenerateFromPassword([]byte("zorgkaart2024"), bcrypt.MinCost)
	require.NoError(t, err)

	g := NewGate(string(digest))
	assert.NoError(t, g.Check("zorgkaart2024"))
	assert.ErrorIs(t, g.Check("fout"), common.ErrorUnauthorized)
	assert.ErrorIs(t, g.Check(""), common.ErrorUnauthorized)
}

func TestGateMalformedDigestFailsClosed(t *testing.T) {
	g := NewGate("not-a-bcrypt-digest")
	assert.ErrorIs(t, g.Check("anything"), common.ErrorUnauthorized)
}
