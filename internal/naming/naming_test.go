//go:build unit
// +build unit

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single word", input: "Post", expected: "post"},
		{name: "two words", input: "BlogPost", expected: "blog_post"},
		{name: "already lower", input: "post", expected: "post"},
		{name: "acronym run", input: "HTTPError", expected: "http_error"},
		{name: "trailing acronym", input: "PostID", expected: "post_id"},
		{name: "digits", input: "OAuth2Token", expected: "o_auth2_token"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snake(tt.input))
		})
	}
}
