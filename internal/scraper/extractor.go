package scraper

import (
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/saulo-duarte/smart-quiz/internal/apperror"
	"github.com/saulo-duarte/smart-quiz/internal/config"
)

const (
	minReadabilityWords = 100
	minStructuralWords  = 50
)

var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Noscript: true,
	atom.Template: true,
}

func ExtractCleanText(page string) (string, error) {
	return ExtractFromPage(page, "")
}

// ExtractFromPage tries main-content extraction first and falls back to the
// visible text of the whole document.
func ExtractFromPage(page, pageURL string) (string, error) {
	if strings.TrimSpace(page) == "" {
		return "", apperror.New(apperror.EmptyInput, "empty HTML content")
	}

	if text, ok := readabilityText(page, pageURL); ok {
		return text, nil
	}

	text, err := structuralText(page)
	if err != nil {
		return "", apperror.Wrap(apperror.InsufficientContent, "parse HTML", err)
	}
	if wordCount(text) < minStructuralWords {
		return "", apperror.New(apperror.InsufficientContent, "insufficient content extracted")
	}
	return text, nil
}

func readabilityText(page, pageURL string) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			config.Log.WithField("panic", r).Warn("Readability failed, using fallback")
			text, ok = "", false
		}
	}()

	u, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		u = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(page), u)
	if err != nil {
		config.Log.WithError(err).Warn("Readability failed, using fallback")
		return "", false
	}

	text = normalizeSpace(article.TextContent)
	if wordCount(text) < minReadabilityWords {
		config.Log.Warn("Readability produced insufficient content, using fallback")
		return "", false
	}
	return text, true
}

func structuralText(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return normalizeSpace(strings.Join(parts, " ")), nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
