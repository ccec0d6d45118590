package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoisyDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host  string
		noisy bool
	}{
		{"reddit.com", true},
		{"www.reddit.com", true},
		{"old.reddit.com", true},
		{"reddit.com:443", true},
		{"facebook.com", true},
		{"notreddit.com", false},
		{"acme.test", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.noisy, IsNoisyDomain(tt.host), tt.host)
	}
}
