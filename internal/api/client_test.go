package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type memCache struct {
	mu     sync.Mutex
	bodies map[string][]byte
	hits   int
}

func newMemCache() *memCache { return &memCache{bodies: map[string][]byte{}} }

func (m *memCache) CachedResponse(_ context.Context, key string, _ time.Duration) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bodies[key]
	if ok {
		m.hits++
	}
	return b, ok, nil
}

func (m *memCache) StoreResponse(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies[key] = append([]byte(nil), body...)
	return nil
}

func TestExercises_SendsCredentialsAndOffset(t *testing.T) {
	t.Parallel()

	var gotHost, gotKey, gotLimit, gotOffset string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Header.Get("x-rapidapi-host")
		gotKey = r.Header.Get("x-rapidapi-key")
		gotLimit = r.URL.Query().Get("limit")
		gotOffset = r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"0001","name":"3/4 sit-up","bodyPart":"waist","target":"abs","equipment":"body weight","gifUrl":"https://example.com/0001.gif","instructions":["Lie flat","Curl up"]}]`))
	}))
	defer srv.Close()

	c := New(Config{ExerciseURL: srv.URL + "/exercises", ExerciseHost: "exercisedb.test", ExerciseKey: "secret"})
	got, err := c.Exercises(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("Exercises: %v", err)
	}

	if gotHost != "exercisedb.test" || gotKey != "secret" {
		t.Errorf("headers host=%q key=%q", gotHost, gotKey)
	}
	if gotLimit != "10" || gotOffset != "20" {
		t.Errorf("limit=%q offset=%q, want 10/20", gotLimit, gotOffset)
	}
	if len(got) != 1 || got[0].BodyPart != "waist" || len(got[0].Instructions) != 2 {
		t.Errorf("Exercises = %+v", got)
	}
}

func TestExercises_MissingKey(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(Config{ExerciseURL: srv.URL})
	_, err := c.Exercises(context.Background(), 1, 10)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if called {
		t.Fatal("request sent without credentials")
	}
}

func TestNews_PageAndLimit(t *testing.T) {
	t.Parallel()

	var gotPage, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[{"source":"Daily","title":"Dengue cases rise","link":"https://news.test/a"},{"source":"Times","title":"Heat wave","description":"Stay hydrated","link":"https://news.test/b"}]`))
	}))
	defer srv.Close()

	c := New(Config{NewsURL: srv.URL})
	got, err := c.News(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if gotPage != "2" || gotLimit != "4" {
		t.Errorf("page=%q limit=%q", gotPage, gotLimit)
	}
	if len(got) != 2 || got[0].Description != "" || got[1].Description != "Stay hydrated" {
		t.Errorf("News = %+v", got)
	}
}

func TestNutrition_QueryAndLenientFields(t *testing.T) {
	t.Parallel()

	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(`[{"name":"apple","calories":53,"serving_size_g":"Only available for premium subscribers.","fat_total_g":0.2,"protein_g":"0.3","sodium_mg":1,"potassium_mg":11,"cholesterol_mg":0,"carbohydrates_total_g":14.1,"fiber_g":2.4,"sugar_g":10.3,"fat_saturated_g":null}]`))
	}))
	defer srv.Close()

	c := New(Config{NutritionURL: srv.URL, NutritionKey: "ninja"})
	got, err := c.Nutrition(context.Background(), " Chicken Breast ")
	if err != nil {
		t.Fatalf("Nutrition: %v", err)
	}
	if gotQuery != "Chicken Breast" || gotKey != "ninja" {
		t.Errorf("query=%q key=%q", gotQuery, gotKey)
	}
	if len(got) != 1 {
		t.Fatalf("records = %d, want 1", len(got))
	}
	f := got[0]
	if f.Calories != 53 || f.ProteinG != 0.3 || f.ServingSizeG != 0 || f.CarbohydratesTotalG != 14.1 {
		t.Errorf("facts = %+v", f)
	}
}

func TestNutrition_EmptyResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{NutritionURL: srv.URL, NutritionKey: "ninja"})
	got, err := c.Nutrition(context.Background(), "zzzznotfood")
	if err != nil {
		t.Fatalf("Nutrition: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("records = %d, want 0", len(got))
	}
}

func TestGetJSON_StatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{NewsURL: srv.URL})
	_, err := c.News(context.Background(), 1, 4)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusTooManyRequests || se.Service != "news" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestGetJSON_DecodeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	c := New(Config{NewsURL: srv.URL})
	if _, err := c.News(context.Background(), 1, 4); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetJSON_CancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{NewsURL: srv.URL})
	if _, err := c.News(ctx, 1, 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestGetJSON_ServesFromCache(t *testing.T) {
	t.Parallel()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[{"source":"Daily","title":"One","link":"https://news.test/1"}]`))
	}))
	defer srv.Close()

	cache := newMemCache()
	c := New(Config{NewsURL: srv.URL, CacheTTL: time.Minute}, WithCache(cache))

	for i := 0; i < 3; i++ {
		got, err := c.News(context.Background(), 1, 4)
		if err != nil {
			t.Fatalf("News #%d: %v", i, err)
		}
		if len(got) != 1 || got[0].Title != "One" {
			t.Fatalf("News #%d = %+v", i, got)
		}
	}
	if requests != 1 {
		t.Errorf("upstream requests = %d, want 1", requests)
	}
	if cache.hits != 2 {
		t.Errorf("cache hits = %d, want 2", cache.hits)
	}
}

func TestGetJSON_CacheDisabledWithoutTTL(t *testing.T) {
	t.Parallel()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{NewsURL: srv.URL}, WithCache(newMemCache()))
	c.News(context.Background(), 1, 4)
	c.News(context.Background(), 1, 4)

	if requests != 2 {
		t.Errorf("upstream requests = %d, want 2", requests)
	}
}
