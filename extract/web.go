package extract

import (
	"bytes"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/halcyonlabs/corpus/core"
	"golang.org/x/net/html"
)

// elements whose text is never document content
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

// readabilityStrategy is the primary web strategy: article/body detection via
// go-readability. It works well on article-shaped pages and poorly on bare
// listings, which is what the tag-strip fallback is for.
type readabilityStrategy struct{}

// NewReadabilityStrategy creates the readability-based web extraction strategy.
func NewReadabilityStrategy() Strategy {
	return readabilityStrategy{}
}

func (readabilityStrategy) Name() string { return "readability" }

func (readabilityStrategy) Extract(data []byte, src core.Source) (string, string, error) {
	pageURL, err := url.Parse(src.Identifier)
	if err != nil {
		pageURL = nil
	}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return "", "", err
	}

	return article.TextContent, article.Title, nil
}

// tagStripStrategy is the generic fallback: parse the HTML tree, drop
// non-content elements, and join the remaining text nodes.
type tagStripStrategy struct{}

// NewTagStripStrategy creates the generic HTML tag-stripping strategy.
func NewTagStripStrategy() Strategy {
	return tagStripStrategy{}
}

func (tagStripStrategy) Name() string { return "tagstrip" }

func (tagStripStrategy) Extract(data []byte, _ core.Source) (string, string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", "", err
	}

	title := findHTMLTitle(doc)

	var sb strings.Builder
	collectText(doc, &sb)

	// Collapse whitespace runs left behind by removed markup.
	text := strings.Join(strings.Fields(sb.String()), " ")
	return text, title, nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func findHTMLTitle(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
