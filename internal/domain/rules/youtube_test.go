package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"noders-content-service/internal/domain/rules"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://youtu.be/abc12345678", "abc12345678", true},
		{"https://youtu.be/abc12345678?t=42", "abc12345678", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=3", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"  youtube.com/embed/dQw4w9WgXcQ?autoplay=1 ", "dQw4w9WgXcQ", true},
		{"not a url", "", false},
		{"", "", false},
		{"https://vimeo.com/123456", "", false},
		{"https://youtu.be/short", "", false},
		{"https://notyoutube.com/watch?v=dQw4w9WgXcQ", "", false},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://evil.example/youtube.com/watch?v=abcdefghijk", "", false},
		{"https://evil.example/x.youtu.be/abcdefghijk", "", false},
		{"https://youtube.com.evil.example/watch?v=abcdefghijk", "", false},
		{"ftp://youtu.be/abcdefghijk", "", false},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQextra", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := rules.ExtractVideoID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
