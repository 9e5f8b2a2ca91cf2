package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"parafrase/internal/logging"
)

const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider queries the DuckDuckGo HTML endpoint and parses result
// snippets out of the page. No API key required.
type DuckDuckGoProvider struct {
	client    *http.Client
	endpoint  string
	region    string
	language  string
	minLength int
	maxLength int
	log       *zap.Logger
}

// DuckDuckGoOptions configures the provider.
type DuckDuckGoOptions struct {
	Region    string // e.g. "id-id"
	Language  string // results language, e.g. "id"
	Timeout   time.Duration
	MinLength int    // snippets shorter than this are discarded
	MaxLength int    // snippets are truncated to this length
	Endpoint  string // override for tests
}

// NewDuckDuckGo creates a provider with the given options.
func NewDuckDuckGo(opts DuckDuckGoOptions) *DuckDuckGoProvider {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Endpoint == "" {
		opts.Endpoint = duckDuckGoEndpoint
	}
	if opts.MaxLength == 0 {
		opts.MaxLength = 2000
	}
	return &DuckDuckGoProvider{
		client:    &http.Client{Timeout: opts.Timeout},
		endpoint:  opts.Endpoint,
		region:    opts.Region,
		language:  opts.Language,
		minLength: opts.MinLength,
		maxLength: opts.MaxLength,
		log:       logging.Named("search"),
	}
}

// Search queries for the joined keywords and returns snippets ranked by
// relevance. Errors are returned for the caller to absorb; an empty result
// is not an error.
func (p *DuckDuckGoProvider) Search(ctx context.Context, keywords []string, maxResults int) ([]Snippet, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	query := strings.Join(keywords, " ")

	params := url.Values{}
	params.Set("q", query)
	if p.region != "" {
		params.Set("kl", p.region)
	}
	if p.language != "" {
		params.Set("kad", p.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; parafrase/1.0)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	snippets := p.extractSnippets(doc, query)
	if len(snippets) > maxResults {
		snippets = snippets[:maxResults]
	}
	p.log.Debug("search complete", zap.String("query", query), zap.Int("results", len(snippets)))
	return snippets, nil
}

// extractSnippets walks the parsed page collecting result snippets and
// titles. The result page marks them with the result__snippet and
// result__title classes.
func (p *DuckDuckGoProvider) extractSnippets(doc *html.Node, query string) []Snippet {
	var snippets []Snippet
	var currentTitle string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__title"):
				currentTitle = strings.TrimSpace(textContent(n))
			case hasClass(n, "result__snippet"):
				text := strings.TrimSpace(textContent(n))
				if len(text) > p.maxLength {
					text = text[:p.maxLength]
				}
				if len(text) >= p.minLength {
					snippets = append(snippets, Snippet{
						Title:     currentTitle,
						Text:      text,
						URL:       attr(n, "href"),
						Relevance: Relevance(query, text),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return snippets
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
