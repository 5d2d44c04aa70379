package main

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const excerptRunes = 60

// excerpt flattens a rich-text body to its visible text and truncates it for a table cell.
func excerpt(body string, limit int) string {
	text := visibleText(body)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

func visibleText(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return strings.Join(strings.Fields(body), " ")
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func excerptCell(v any) string {
	s, _ := v.(string)
	return excerpt(s, excerptRunes)
}
