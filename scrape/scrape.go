// Package scrape fetches the title of a web page, used to prefill the title
// field when submitting a story by URL alone.
package scrape

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title fetches the page at url and returns the text of its <title> element,
// trimmed. Pages without a title return an error rather than an empty
// string, so callers can fall back to asking for one.
func Title(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %v", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("no title found at %v", url)
	}

	return title, nil
}
