package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "kaviospix/src/app"
)

func TestTokenIssuer(t *testing.T) {
	issuer := app.NewTokenIssuer("secret-key", time.Hour)

	t.Run("issued token verifies to its subject", func(t *testing.T) {
		token, err := issuer.Issue("user-42")
		require.NoError(t, err)

		subject, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", subject)
	})

	t.Run("expired token is unauthenticated", func(t *testing.T) {
		expired := app.NewTokenIssuer("secret-key", -time.Minute)
		token, err := expired.Issue("user-42")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.True(t, errors.Is(err, app.ErrUnauthenticated))
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := app.NewTokenIssuer("other-secret", time.Hour)
		token, err := other.Issue("user-42")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.True(t, errors.Is(err, app.ErrUnauthenticated))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.True(t, errors.Is(err, app.ErrUnauthenticated))
	})
}
