package classifier

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
)

// RemoveLinks keeps the text of markdown links and drops bare URLs.
func RemoveLinks(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")
	return bareURL.ReplaceAllString(input, "")
}

// PlainText renders markdown to HTML, strips the tags and links, and collapses
// whitespace. Reviews pasted from marketplaces often carry markdown emphasis.
func PlainText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input),
		blackfriday.WithNoExtensions(),
		blackfriday.WithRenderer(blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{})),
	)
	text := html.UnescapeString(htmlTag.ReplaceAllString(string(output), " "))
	return strings.Join(strings.Fields(text), " ")
}
