package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSeed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		raw        string
		wantURL    string
		wantDomain string
	}{
		{"schemeless", "example.com", "http://example.com", "example.com"},
		{"https kept", "https://example.com/about", "https://example.com/about", "example.com"},
		{"fragment stripped", "http://example.com/page#team", "http://example.com/page", "example.com"},
		{"host lowered", "http://Example.COM", "http://example.com", "example.com"},
		{"whitespace trimmed", "  example.com  ", "http://example.com", "example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			target, err := NormalizeSeed(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.wantURL, target.SeedURL)
			assert.Equal(t, tc.wantDomain, target.Domain)
		})
	}
}

func TestNormalizeSeedRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "http://"} {
		_, err := NormalizeSeed(raw)
		require.ErrorIs(t, err, ErrInvalidSeed, "raw=%q", raw)
	}
}
