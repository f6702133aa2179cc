package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/healthtoday/healthtoday/internal/model"
)

// News returns one page of health news. Fewer than limit articles means
// there is no next page.
func (c *Client) News(ctx context.Context, page, limit int) ([]model.NewsArticle, error) {
	if page < 1 {
		page = 1
	}

	u, err := url.Parse(c.cfg.NewsURL)
	if err != nil {
		return nil, fmt.Errorf("api: news: parse url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	var out []model.NewsArticle
	if err := c.getJSON(ctx, "news", u.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
