package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danspam/bundlemap/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{
			name:     "javascript by extension",
			filename: "app.js",
			content:  "function f() { return 1; }",
			want:     langdetect.LangJavaScript,
		},
		{
			name:     "typescript by extension",
			filename: "app.ts",
			content:  "const x: number = 1;",
			want:     langdetect.LangTypeScript,
		},
		{
			name:     "empty content",
			filename: "app.js",
			content:  "",
			want:     langdetect.LangUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect(tt.filename, []byte(tt.content)))
		})
	}
}

func TestIsScript(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsScript("a.js", []byte("var a = 1;")))
	assert.True(t, langdetect.IsScript("data.json", []byte(`{"a": 1}`)))
	assert.True(t, langdetect.IsScript("", []byte("")), "inconclusive counts as script")

	assert.False(t, langdetect.IsScript("page.html", []byte("<!doctype html><html><body></body></html>")))
}
