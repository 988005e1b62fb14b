// AngelaMos | 2026
// keys.go

package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/cms-blog/internal/auth"
	"github.com/carterperez-dev/cms-blog/internal/config"
)

// NewJWTManager returns a session issuer backed by a throwaway key pair.
func NewJWTManager(t testing.TB) *auth.JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, auth.GenerateKeyPair(priv, pub))

	m, err := auth.NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    priv,
		PublicKeyPath:     pub,
		AccessTokenExpire: 168 * time.Hour,
		Issuer:            "cms-blog-test",
		Audience:          "cms-blog-test-api",
	})
	require.NoError(t, err)
	return m
}
