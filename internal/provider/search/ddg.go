package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DDG scrapes the DuckDuckGo HTML endpoint directly. It needs no token and
// serves as the fallback when no search actor is configured.
type DDG struct {
	hc *http.Client
}

func NewDDG() *DDG {
	return &DDG{hc: &http.Client{Timeout: 12 * time.Second}}
}

func (d *DDG) Search(ctx context.Context, query string, max int) ([]Result, error) {
	u := "https://duckduckgo.com/html/?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := d.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ddg status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var out []Result
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		a := s.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		target := decodeRedirect(href)
		out = append(out, Result{
			Title:   cleanText(a.Text()),
			URL:     target,
			Snippet: cleanText(s.Find(".result__snippet").First().Text()),
		})
		return len(out) < max
	})

	return out, nil
}

// decodeRedirect unwraps DDG's /l/?uddg=<urlencoded> indirection.
func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
