package markdown

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md          goldmark.Markdown
	ugcPolicy   *bluemonday.Policy
	stripPolicy *bluemonday.Policy
)

func init() {
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.Table,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // 原始 HTML 交给 bluemonday 清理
		),
	)

	ugcPolicy = bluemonday.UGCPolicy()
	ugcPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	ugcPolicy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	ugcPolicy.AllowElements("table", "thead", "tbody", "tr", "th", "td", "del")

	stripPolicy = bluemonday.StripTagsPolicy()
}

// Render 将 markdown 渲染为清理后的 HTML
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return ugcPolicy.Sanitize(buf.String()), nil
}

// Excerpt 生成纯文本摘要，最多 limit 个字符
func Excerpt(source string, limit int) string {
	rendered, err := Render(source)
	if err != nil {
		rendered = source
	}
	text := strings.Join(strings.Fields(stripPolicy.Sanitize(rendered)), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}
