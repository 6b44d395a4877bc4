package textutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern          = regexp.MustCompile(`<[^>]+>`)
)

// RemoveLinks keeps the display text of markdown links and strips bare URLs.
func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	input = bareURLPattern.ReplaceAllString(input, "")

	return input
}

// ConvertMarkdownToText flattens markdown into a single line of plain text
// so the classifiers never see formatting tokens or URLs.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)

	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	output = tagPattern.ReplaceAll(output, nil)
	plainText := strings.Join(strings.Fields(html.UnescapeString(string(output))), " ")

	return plainText
}
