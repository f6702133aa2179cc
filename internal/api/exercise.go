package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/healthtoday/healthtoday/internal/model"
)

// Exercises returns one page of the exercise database. The remote API is
// offset based, so page is converted to offset = (page-1)*limit.
func (c *Client) Exercises(ctx context.Context, page, limit int) ([]model.Exercise, error) {
	if c.cfg.ExerciseKey == "" {
		return nil, fmt.Errorf("exercise: %w", ErrMissingCredentials)
	}
	if page < 1 {
		page = 1
	}

	u, err := url.Parse(c.cfg.ExerciseURL)
	if err != nil {
		return nil, fmt.Errorf("api: exercise: parse url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa((page-1)*limit))
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("x-rapidapi-host", c.cfg.ExerciseHost)
	header.Set("x-rapidapi-key", c.cfg.ExerciseKey)

	var out []model.Exercise
	if err := c.getJSON(ctx, "exercise", u.String(), header, &out); err != nil {
		return nil, err
	}
	return out, nil
}
