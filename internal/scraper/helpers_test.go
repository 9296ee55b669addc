package scraper_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// articleHTML wraps n words of prose in a page with navigation and scripts.
func articleHTML(words int) string {
	return `<html><head><title>Photosynthesis</title><script>var trackingScript = 1;</script></head>
<body>
<nav><a href="/">navlink home</a> <a href="/about">navlink about</a></nav>
<header>siteheader banner</header>
<article><h1>How plants make food</h1><p>` + prose(words) + `</p></article>
<aside>asidepromo buy now</aside>
<footer>sitefooter copyright</footer>
</body></html>`
}

func prose(words int) string {
	base := strings.Fields("Plants capture light energy and convert water and carbon dioxide into sugar and oxygen.")
	out := make([]string, 0, words)
	for i := 0; i < words; i++ {
		out = append(out, base[i%len(base)])
	}
	return strings.Join(out, " ")
}

type countingFetcher struct {
	calls atomic.Int32
	page  string
	err   error
}

func (f *countingFetcher) FetchHTML(context.Context, string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.page, nil
}

func sentence(i int) string {
	return fmt.Sprintf("Sentence number %d explains a fact.", i)
}

func splitWords(s string) []string { return strings.Fields(s) }
