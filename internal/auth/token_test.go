package auth

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
)

func TestMintAndParseAccess(t *testing.T) {
	issuer := NewIssuer("test-secret")
	identity := Identity{UserID: uuid.Must(uuid.NewV4()), Username: "alice"}

	pair, err := issuer.Mint(identity)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	parsed, err := issuer.ParseAccess(pair.Access)
	assert.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestParseAccess_RejectsRefreshToken(t *testing.T) {
	issuer := NewIssuer("test-secret")
	pair, err := issuer.Mint(Identity{UserID: uuid.Must(uuid.NewV4()), Username: "alice"})
	assert.NoError(t, err)

	_, err = issuer.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccess_WrongSecret(t *testing.T) {
	pair, err := NewIssuer("secret-a").Mint(Identity{UserID: uuid.Must(uuid.NewV4()), Username: "alice"})
	assert.NoError(t, err)

	_, err = NewIssuer("secret-b").ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccess_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret")
	issuer.accessTTL = -time.Minute

	pair, err := issuer.Mint(Identity{UserID: uuid.Must(uuid.NewV4()), Username: "alice"})
	assert.NoError(t, err)

	_, err = issuer.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password124"))
}
