package knowledge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

type newsResponse struct {
	Status   string        `json:"status"`
	Message  string        `json:"message"`
	Articles []NewsArticle `json:"articles"`
}

// News fetches recent articles mentioning the entity (and jurisdiction when
// supplied), newest first, capped at the configured article limit.  Any
// failure degrades to an empty slice.
func (c *Client) News(ctx context.Context, entityName, jurisdiction string) []NewsArticle {
	query := fmt.Sprintf("%q", entityName)
	if jurisdiction != "" {
		query += fmt.Sprintf(" AND %q", jurisdiction)
	}

	maxArticles := c.cfg.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 10
	}
	params := url.Values{
		"q":        {query},
		"apiKey":   {c.cfg.NewsAPIKey},
		"pageSize": {strconv.Itoa(maxArticles)},
		"sortBy":   {"publishedAt"},
		"language": {"en"},
	}

	var resp newsResponse
	if err := c.getJSON(ctx, c.cfg.NewsURL, params, &resp); err != nil {
		c.logger.Warn("news lookup degraded",
			logging.String("entity", entityName), logging.Err(err))
		return nil
	}
	if resp.Status == "error" {
		c.logger.Warn("news api rejected query",
			logging.String("entity", entityName),
			logging.String("message", resp.Message))
		return nil
	}
	if len(resp.Articles) > maxArticles {
		resp.Articles = resp.Articles[:maxArticles]
	}
	return resp.Articles
}
