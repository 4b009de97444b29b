package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	htmlMarker = regexp.MustCompile(`(?i)<\s*(html|body|article|div|p|head|!doctype)[\s>]`)
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// block elements end a line in the extracted text
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "blockquote": true,
	"section": true, "tr": true, "figcaption": true,
}

// LooksLikeHTML reports whether text is markup rather than plain prose
func LooksLikeHTML(text string) bool {
	return htmlMarker.MatchString(text)
}

// VisibleText returns the readable text of an HTML page. The article body is
// preferred over the whole document when the page marks one.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	root := articleNode(doc)
	if root == nil {
		root = doc
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer", "aside", "form":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n")
		}
	}
	walk(root)

	return tidy(buf.String()), nil
}

// articleNode finds the node holding the article body, if the page marks one
func articleNode(doc *html.Node) *html.Node {
	if n := findFirst(doc, func(n *html.Node) bool {
		return attr(n, "itemprop") == "articleBody"
	}); n != nil {
		return n
	}
	if n := findFirst(doc, func(n *html.Node) bool { return n.Data == "article" }); n != nil {
		return n
	}
	return findFirst(doc, func(n *html.Node) bool {
		return n.Data == "main" || attr(n, "role") == "main"
	})
}

// findFirst returns the first element in document order matching pred
func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
