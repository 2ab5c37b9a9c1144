package locale

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "en", expected: "en"},
		{input: "EN", expected: "en"},
		{input: "pt_br", expected: "pt-BR"},
		{input: " ro ", expected: "ro"},
		{input: "", wantErr: true},
		{input: "not a locale", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsValid(tt.input))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewResolver(t *testing.T) {
	r, err := NewResolver("en", []string{"ro", "EN", "bogus locale", "de"})
	require.NoError(t, err)

	assert.Equal(t, "en", r.Default())
	assert.Equal(t, []string{"en", "ro", "de"}, r.Supported())

	_, err = NewResolver("", nil)
	assert.Error(t, err)
}

func TestResolverMatch(t *testing.T) {
	r, err := NewResolver("en", []string{"ro"})
	require.NoError(t, err)

	assert.Equal(t, "ro", r.Match("ro"))
	assert.Equal(t, "ro", r.Match("ro-RO"))
	assert.Equal(t, "en", r.Match("ja"))
	assert.Equal(t, "en", r.Match("%%%"))
}

func TestResolverIsSupported(t *testing.T) {
	r, err := NewResolver("en", []string{"ro"})
	require.NoError(t, err)

	assert.True(t, r.IsSupported("en"))
	assert.True(t, r.IsSupported("RO"))
	assert.True(t, r.IsSupported(" ro "))
	assert.False(t, r.IsSupported("en-GB"))
	assert.False(t, r.IsSupported("ro_RO"))
	assert.False(t, r.IsSupported("fr"))
	assert.False(t, r.IsSupported(""))
	assert.False(t, r.IsSupported("not a locale"))
}

func TestResolverFromRequest(t *testing.T) {
	r, err := NewResolver("en", []string{"ro"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		target   string
		header   string
		expected string
	}{
		{name: "nothing set", target: "/blog-posts", expected: "en"},
		{name: "query parameter", target: "/blog-posts?locale=ro", expected: "ro"},
		{name: "query wins over header", target: "/blog-posts?locale=en", header: "ro", expected: "en"},
		{name: "accept language", target: "/blog-posts", header: "ro-RO,ro;q=0.9,en;q=0.5", expected: "ro"},
		{name: "unsupported header", target: "/blog-posts", header: "ja", expected: "en"},
		{name: "malformed header", target: "/blog-posts", header: ";;;", expected: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			assert.Equal(t, tt.expected, r.FromRequest(req))
		})
	}
}
