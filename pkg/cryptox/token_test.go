package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	s, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, SecretSize256)

	other, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.NotEqual(t, s, other)
}

func TestGenerateSecretRejectsNonPositive(t *testing.T) {
	_, err := GenerateSecret(0)
	require.Error(t, err)
}
