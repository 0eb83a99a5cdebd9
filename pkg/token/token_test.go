package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", "inkwell", time.Hour)

	raw, err := m.Issue(42, "ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := m.Verify(raw)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "inkwell", claims.Issuer)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	m := &Manager{secret: []byte("secret"), issuer: "inkwell", ttl: -time.Minute}

	raw, err := m.Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	raw, err := NewManager("right-secret", "inkwell", time.Hour).Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = NewManager("wrong-secret", "inkwell", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", "inkwell", time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestClaimsUserIDBadSubject(t *testing.T) {
	t.Parallel()

	c := &Claims{}
	c.Subject = "not-a-number"
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
