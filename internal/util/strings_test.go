package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeString(t *testing.T) {
	require.Equal(t, "ping", NormalizeString("ping"))
	require.Equal(t, "acao", NormalizeString("ação"))
	require.Equal(t, "uber", NormalizeString("über"))
}

func TestMatchURL(t *testing.T) {
	require.True(t, MatchURL("check this https://example.com/page"))
	require.True(t, MatchURL("go to example.com now"))
	require.False(t, MatchURL("just plain text"))
	require.False(t, MatchURL("mail me at someone@example.com"), "bare emails are not links")
}

func TestMatchWaUrl(t *testing.T) {
	require.True(t, MatchWaUrl("join https://chat.whatsapp.com/AbCdEfGhIjKlMnOpQrStUv"))
	require.True(t, MatchWaUrl("chat.whatsapp.com/AbCdEfGhIjKlMnOpQrStUv"))
	require.False(t, MatchWaUrl("https://example.com/AbCdEfGhIjKlMnOpQrStUv"))
}
