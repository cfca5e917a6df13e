package pipeline

import (
	"context"
	"testing"
)

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "LF unchanged", input: "line1\nline2\nline3", expected: "line1\nline2\nline3"},
		{name: "CRLF to LF", input: "line1\r\nline2\r\nline3", expected: "line1\nline2\nline3"},
		{name: "CR to LF", input: "line1\rline2\rline3", expected: "line1\nline2\nline3"},
		{name: "mixed line endings", input: "line1\r\nline2\rline3\nline4", expected: "line1\nline2\nline3\nline4"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeLineEndings(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	p := &CommonMarkPreprocessor{}

	t.Run("folds line endings and keeps blank lines", func(t *testing.T) {
		t.Parallel()

		got := p.PreprocessMarkdown(context.Background(), "!(https://x.test)\r\n\r\n\r\n\r\nnext")
		if want := "!(https://x.test)\n\n\n\nnext"; got != want {
			t.Errorf("PreprocessMarkdown() = %q, want %q", got, want)
		}
	})

	t.Run("fenced code keeps blank runs", func(t *testing.T) {
		t.Parallel()

		src := "```\na\n\n\n\nb\n```\n"
		if got := p.PreprocessMarkdown(context.Background(), src); got != src {
			t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
		}
	})

	t.Run("cancelled context returns input", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if got := p.PreprocessMarkdown(ctx, "a\r\nb"); got != "a\r\nb" {
			t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
		}
	})
}
