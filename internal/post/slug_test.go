// AngelaMos | 2026
// slug_test.go

package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"My First Post", "my-first-post"},
		{"  Go 1.25: What's New?  ", "go-125-whats-new"},
		{"multiple   spaces\tand\ttabs", "multiple-spaces-and-tabs"},
		{"--dashes -- everywhere--", "dashes-everywhere"},
		{"Café au lait", "caf-au-lait"},
		{"!!!", "post"},
		{"", "post"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "hello-world", slugCandidate("hello-world", 0))
	assert.Equal(t, "hello-world-1", slugCandidate("hello-world", 1))
	assert.Equal(t, "hello-world-12", slugCandidate("hello-world", 12))
}

func TestDefaultExcerpt(t *testing.T) {
	short := "short body"
	assert.Equal(t, short, defaultExcerpt(short))

	long := make([]rune, 450)
	for i := range long {
		long[i] = 'é'
	}
	got := []rune(defaultExcerpt(string(long)))
	assert.Len(t, got, 300)
}
