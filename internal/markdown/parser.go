package markdown

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Parser renders camera descriptions. Raw HTML in the source is omitted and
// dangerous link targets are dropped, so output is safe to embed in a page.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML renders a description for a template. If conversion fails the text
// is shown escaped instead.
func (p *Parser) HTML(description string) template.HTML {
	if description == "" {
		return ""
	}

	out, err := p.Parse([]byte(description))
	if err != nil {
		slog.Warn("failed to render description", "error", err)
		return template.HTML(template.HTMLEscapeString(description))
	}

	return template.HTML(out)
}
