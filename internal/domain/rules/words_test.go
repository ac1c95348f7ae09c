package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"noders-content-service/internal/domain/rules"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{"empty", "", 0},
		{"only tags", "<p></p><br/>", 0},
		{"plain", "hello world", 2},
		{"inline tags join", "<p><b>hel</b>lo there</p>", 2},
		{"paragraphs separate", "<p>one</p><p>two</p>", 2},
		{"line break separates", "one<br>two", 2},
		{"entities decoded", "one&nbsp;two &amp; three", 4},
		{"script ignored", "<p>visible</p><script>var a = 1;</script>", 1},
		{"list items", "<ul><li>a</li><li>b</li><li>c</li></ul>", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.CountWords(tt.html))
		})
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world", rules.PlainText("<p>Hello <em>world</em></p>"))
}
