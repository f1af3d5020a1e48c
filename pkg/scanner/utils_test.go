package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"blog", "Blog"},
		{"case-studies", "Case Studies"},
		{"team_members", "Team Members"},
		{"(pages)", "(Pages)"},
		{"my-post-2024", "My Post 2024"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), "TitleCase(%q)", tt.in)
	}
}

func TestIsURLAllowed(t *testing.T) {
	allowed := []string{
		"https://example.com",
		"https://www.example.com/path",
		"http://blog.example.co.uk",
	}
	for _, u := range allowed {
		assert.True(t, IsURLAllowed(u), "expected %q to be allowed", u)
	}

	blocked := []string{
		"https://localhost",
		"https://localhost:8080",
		"http://127.0.0.1/wp-json/",
		"http://10.0.0.5",
		"http://172.16.0.1",
		"http://192.168.1.1",
		"http://169.254.169.254/latest/meta-data/",
		"https://internal-host",
		"https://service.internal",
		"https://printer.local",
		"http://[::1]/",
	}
	for _, u := range blocked {
		assert.False(t, IsURLAllowed(u), "expected %q to be blocked", u)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
		{"https://example.com/", "https://example.com"},
		{"https://example.com///", "https://example.com"},
		{"http://example.com", "http://example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), "NormalizeURL(%q)", tt.in)
	}
}
