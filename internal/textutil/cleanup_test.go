package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveLinks(t *testing.T) {
	tests := []struct {
		description string
		input       string
		want        string
	}{
		{
			"Should keep the display text of markdown links",
			"read [this post](https://example.com/post) today",
			"read this post today",
		},
		{
			"Should drop bare URLs",
			"see https://example.com/post for details",
			"see  for details",
		},
		{
			"Should drop www URLs",
			"see www.example.com for details",
			"see  for details",
		},
		{
			"Should leave plain text alone",
			"nothing to strip here",
			"nothing to strip here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, RemoveLinks(tt.input))
		})
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	tests := []struct {
		description string
		input       string
		want        string
	}{
		{
			"Should flatten headings and emphasis",
			"# Today\n\nI feel **great** about _everything_.",
			"Today I feel great about everything.",
		},
		{
			"Should reduce links to their text",
			"I loved [this article](https://example.com/a)!",
			"I loved this article!",
		},
		{
			"Should collapse whitespace",
			"so   happy\n\n\ntoday",
			"so happy today",
		},
		{
			"Should return empty for URL-only input",
			"https://example.com/post",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, ConvertMarkdownToText(tt.input))
		})
	}
}
