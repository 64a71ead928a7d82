package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	sanitizer = bluemonday.UGCPolicy()
)

func init() {
	sanitizer.AllowImages()
	sanitizer.AddTargetBlankToFullyQualifiedLinks(true)
	sanitizer.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts post or comment text to sanitized HTML.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)) // Fallback
	}

	sanitized := sanitizer.SanitizeBytes(buf.Bytes())

	return EnhanceHTMLContent(string(sanitized))
}
