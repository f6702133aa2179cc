package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/healthtoday/healthtoday/internal/model"
)

// Nutrition looks up nutrient data for a food query. An empty slice means
// the service knows nothing about the query.
func (c *Client) Nutrition(ctx context.Context, query string) ([]model.NutritionFacts, error) {
	if c.cfg.NutritionKey == "" {
		return nil, fmt.Errorf("nutrition: %w", ErrMissingCredentials)
	}
	query = strings.TrimSpace(query)

	u, err := url.Parse(c.cfg.NutritionURL)
	if err != nil {
		return nil, fmt.Errorf("api: nutrition: parse url: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("X-Api-Key", c.cfg.NutritionKey)

	var rows []nutritionRecord
	if err := c.getJSON(ctx, "nutrition", u.String(), header, &rows); err != nil {
		return nil, err
	}

	out := make([]model.NutritionFacts, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.facts())
	}
	return out, nil
}

// nutritionRecord mirrors the wire shape. Some plans return placeholder
// strings instead of numbers for gated fields, so every field is lenient.
type nutritionRecord struct {
	Name                string    `json:"name"`
	ServingSizeG        flexFloat `json:"serving_size_g"`
	Calories            flexFloat `json:"calories"`
	ProteinG            flexFloat `json:"protein_g"`
	CarbohydratesTotalG flexFloat `json:"carbohydrates_total_g"`
	FatTotalG           flexFloat `json:"fat_total_g"`
	FatSaturatedG       flexFloat `json:"fat_saturated_g"`
	FiberG              flexFloat `json:"fiber_g"`
	SugarG              flexFloat `json:"sugar_g"`
	CholesterolMg       flexFloat `json:"cholesterol_mg"`
	SodiumMg            flexFloat `json:"sodium_mg"`
	PotassiumMg         flexFloat `json:"potassium_mg"`
}

func (r nutritionRecord) facts() model.NutritionFacts {
	return model.NutritionFacts{
		Name:                r.Name,
		ServingSizeG:        float64(r.ServingSizeG),
		Calories:            float64(r.Calories),
		ProteinG:            float64(r.ProteinG),
		CarbohydratesTotalG: float64(r.CarbohydratesTotalG),
		FatTotalG:           float64(r.FatTotalG),
		FatSaturatedG:       float64(r.FatSaturatedG),
		FiberG:              float64(r.FiberG),
		SugarG:              float64(r.SugarG),
		CholesterolMg:       float64(r.CholesterolMg),
		SodiumMg:            float64(r.SodiumMg),
		PotassiumMg:         float64(r.PotassiumMg),
	}
}

// flexFloat decodes a JSON number, a numeric string, or anything else as 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
