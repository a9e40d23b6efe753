package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// Client is the HTTP Provider over the three public knowledge sources.
type Client struct {
	cfg        config.KnowledgeConfig
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient builds a knowledge client from configuration.
func NewClient(cfg config.KnowledgeConfig, log logging.Logger) *Client {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.Named("knowledge"),
	}
}

// getJSON issues a GET with the configured user agent and decodes the JSON
// response into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// wikipediaResponse mirrors the slice of the MediaWiki query response the
// scorer consumes.
type wikipediaResponse struct {
	Query struct {
		Pages map[string]wikipediaPage `json:"pages"`
	} `json:"query"`
}

type wikipediaPage struct {
	PageID    int               `json:"pageid"`
	Title     string            `json:"title"`
	Extract   string            `json:"extract"`
	Missing   *string           `json:"missing"`
	PageProps map[string]string `json:"pageprops"`
}

// Wikipedia fetches the encyclopedia page for entityName.  Any failure
// degrades to the zero value (Exists false).
func (c *Client) Wikipedia(ctx context.Context, entityName string) WikipediaData {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {entityName},
		"prop":        {"extracts|pageprops|info"},
		"inprop":      {"url"},
		"exintro":     {"true"},
		"explaintext": {"true"},
	}

	var resp wikipediaResponse
	if err := c.getJSON(ctx, c.cfg.WikipediaURL, params, &resp); err != nil {
		c.logger.Warn("wikipedia lookup degraded",
			logging.String("entity", entityName), logging.Err(err))
		return WikipediaData{}
	}

	for _, page := range resp.Query.Pages {
		if page.Missing != nil {
			return WikipediaData{}
		}
		return WikipediaData{
			Exists:        true,
			Title:         page.Title,
			URL:           fmt.Sprintf("https://en.wikipedia.org/?curid=%d", page.PageID),
			Extract:       page.Extract,
			Controversial: detectControversy(page),
		}
	}
	return WikipediaData{}
}

// detectControversy flags pages whose title or lead mentions controversy or
// scandal, or that are disambiguation pages (an ambiguous name is itself a
// weak signal the lookup found nothing specific).
func detectControversy(page wikipediaPage) bool {
	text := strings.ToLower(page.Title + " " + page.Extract)
	if strings.Contains(text, "controvers") || strings.Contains(text, "scandal") {
		return true
	}
	_, disambiguation := page.PageProps["disambiguation"]
	return disambiguation
}
