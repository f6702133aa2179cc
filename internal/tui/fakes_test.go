package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/healthtoday/healthtoday/internal/auth"
	"github.com/healthtoday/healthtoday/internal/clicks"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

// fakeExercises serves n exercises in total, paged by limit.
type fakeExercises struct {
	mu    sync.Mutex
	total int
	calls []int // pages requested
	err   error
}

func (f *fakeExercises) Exercises(_ context.Context, page, limit int) ([]model.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Exercise
	for i := (page - 1) * limit; i < page*limit && i < f.total; i++ {
		out = append(out, model.Exercise{
			ID:           fmt.Sprintf("%04d", i),
			Name:         fmt.Sprintf("exercise %d", i),
			BodyPart:     "waist",
			Target:       "abs",
			Equipment:    "body weight",
			Instructions: []string{"Lie flat", "Curl up"},
		})
	}
	return out, nil
}

func (f *fakeExercises) pages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}

type fakeNews struct {
	mu    sync.Mutex
	total int
	calls []int
}

func (f *fakeNews) News(_ context.Context, page, limit int) ([]model.NewsArticle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	var out []model.NewsArticle
	for i := (page - 1) * limit; i < page*limit && i < f.total; i++ {
		out = append(out, model.NewsArticle{
			Source: "Daily Mirror",
			Title:  fmt.Sprintf("Story %d", i),
			Link:   fmt.Sprintf("https://news.test/%d", i),
		})
	}
	return out, nil
}

type fakeNutrition struct {
	mu      sync.Mutex
	queries []string
	foods   map[string]model.NutritionFacts
}

func (f *fakeNutrition) Nutrition(_ context.Context, query string) ([]model.NutritionFacts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if query == "boom" {
		return nil, errors.New("upstream 500")
	}
	facts, ok := f.foods[query]
	if !ok {
		return []model.NutritionFacts{}, nil
	}
	return []model.NutritionFacts{facts}, nil
}

// fakeSession is an in-memory identity provider.
type fakeSession struct {
	users   map[string]model.User // by email
	pass    map[string]string
	current *model.User
}

func newFakeSession() *fakeSession {
	return &fakeSession{users: map[string]model.User{}, pass: map[string]string{}}
}

func (s *fakeSession) SignIn(_ context.Context, email, password string) (model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return model.User{}, auth.ErrUserNotFound
	}
	if s.pass[email] != password {
		return model.User{}, auth.ErrInvalidCredentials
	}
	s.current = &u
	return u, nil
}

func (s *fakeSession) SignUp(_ context.Context, username, email, password string) (model.User, error) {
	if _, ok := s.users[email]; ok {
		return model.User{}, auth.ErrEmailInUse
	}
	u := model.User{ID: "u-" + username, Username: username, Email: email}
	s.users[email] = u
	s.pass[email] = password
	s.current = &u
	return u, nil
}

func (s *fakeSession) SignOut(context.Context) error {
	if s.current == nil {
		return auth.ErrNotSignedIn
	}
	s.current = nil
	return nil
}

func (s *fakeSession) Current() (model.User, bool) {
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

type testDashboard struct {
	m         *DashboardModel
	exercises *fakeExercises
	news      *fakeNews
	nutrition *fakeNutrition
	session   *fakeSession
	clicks    *clicks.Tracker
}

func newTestDashboard() *testDashboard {
	td := &testDashboard{
		exercises: &fakeExercises{total: 25},
		news:      &fakeNews{total: 6},
		nutrition: &fakeNutrition{foods: map[string]model.NutritionFacts{
			"Apple": {Name: "apple", Calories: 53, ProteinG: 0.3, CarbohydratesTotalG: 14.1, FiberG: 2.4, SugarG: 10.3, ServingSizeG: 100},
		}},
		session: newFakeSession(),
		clicks:  clicks.New(),
	}
	td.session.current = &model.User{ID: "u1", Username: "jane", Email: "jane@example.com"}
	td.m = NewDashboardModel(DashboardDeps{
		Ctx:       context.Background(),
		Session:   td.session,
		Clicks:    td.clicks,
		Exercises: td.exercises,
		News:      td.news,
		Nutrition: td.nutrition,
		Log:       zerolog.Nop(),
	})
	td.m.width, td.m.height = 120, 40
	return td
}

// runCmd executes cmd and any batched children, returning the messages.
// Timer commands (spinner ticks, cursor blink) are abandoned rather than
// waited on.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(50 * time.Millisecond):
		return nil
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case SpinnerTickMsg, nil:
		return nil
	}
	return []tea.Msg{msg}
}

// pump runs cmd and feeds resulting messages back into the dashboard until
// no more commands are produced.
func (td *testDashboard) pump(cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		_, next := td.m.Update(msg)
		td.pump(next)
	}
}

func (td *testDashboard) key(s string) {
	_, cmd := td.m.Update(keyMsg(s))
	td.pump(cmd)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
