package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/healthtoday/healthtoday/internal/model"
)

// appHarness wires the full page set around a fake session.
type appHarness struct {
	app *App
	td  *testDashboard
}

func newAppHarness() *appHarness {
	td := newTestDashboard()
	td.session.current = nil
	ctx := context.Background()
	app := NewApp(
		NewWelcomePage(),
		NewLoginPage(ctx, td.session, zerolog.Nop()),
		NewRegisterPage(ctx, td.session, zerolog.Nop()),
		NewDashboardView(td.m),
	)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &appHarness{app: app, td: td}
}

func (h *appHarness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	h.drain(cmd)
}

func (h *appHarness) drain(cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		_, next := h.app.Update(msg)
		h.drain(next)
	}
}

func (h *appHarness) typeText(s string) {
	for _, r := range s {
		h.send(keyMsg(string(r)))
	}
}

func TestApp_WelcomeRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"l"}, PageLogin},
		{[]string{"r"}, PageRegister},
		{[]string{"enter"}, PageRegister},
		{[]string{"down", "enter"}, PageLogin},
	}
	for _, tt := range tests {
		h := newAppHarness()
		for _, k := range tt.keys {
			h.send(keyMsg(k))
		}
		if got := h.app.ActivePage(); got != tt.want {
			t.Errorf("keys %v: page = %q, want %q", tt.keys, got, tt.want)
		}
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	t.Parallel()
	h := newAppHarness()

	_, cmd := h.app.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	t.Parallel()
	h := newAppHarness()
	h.send(keyMsg("l"))

	h.send(keyMsg("enter"))
	view := h.app.View()
	for _, want := range []string{"Email is required", "Password is required"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	h.typeText("jane")
	h.send(keyMsg("enter"))
	if !strings.Contains(h.app.View(), "Invalid email") {
		t.Error("view missing invalid email message")
	}
	if h.app.ActivePage() != PageLogin {
		t.Fatalf("page = %q, want login", h.app.ActivePage())
	}
}

func TestLogin_ProviderErrors(t *testing.T) {
	t.Parallel()
	h := newAppHarness()
	h.td.session.users["jane@example.com"] = model.User{ID: "u1", Username: "jane", Email: "jane@example.com"}
	h.td.session.pass["jane@example.com"] = "correct-horse"

	tests := []struct {
		email, password, want string
	}{
		{"nobody@example.com", "whatever", "User does not exist"},
		{"jane@example.com", "wrong", "Invalid credentials"},
	}
	for _, tt := range tests {
		h.send(keyMsg("l"))
		page := h.app.pages[PageLogin].(*LoginPage)
		page.form.reset()
		page.form.setValue("Email", tt.email)
		page.form.setValue("Password", tt.password)
		h.send(keyMsg("enter"))
		if page.form.alert != tt.want {
			t.Errorf("%s: alert = %q, want %q", tt.email, page.form.alert, tt.want)
		}
	}
}

func TestRegisterThenDashboard(t *testing.T) {
	t.Parallel()
	h := newAppHarness()
	h.send(keyMsg("r"))

	page := h.app.pages[PageRegister].(*RegisterPage)
	page.form.setValue("Username", "jane")
	page.form.setValue("Email", "jane@example.com")
	page.form.setValue("Password", "password1")
	page.form.setValue("ConfirmPassword", "password2")
	h.send(keyMsg("enter"))
	if page.form.errs["ConfirmPassword"] != "Passwords must match" {
		t.Fatalf("errs = %v", page.form.errs)
	}

	page.form.setValue("ConfirmPassword", "password1")
	h.send(keyMsg("enter"))
	if got := h.app.ActivePage(); got != PageDashboard {
		t.Fatalf("page = %q, want dashboard", got)
	}
	if got := h.td.exercises.pages(); len(got) != 1 {
		t.Errorf("dashboard did not mount exercise tab: %v", got)
	}
	view := h.app.View()
	for _, want := range []string{"Hi jane,", "Account created successfully!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// Registering again with the same email reports the provider error.
	h.send(keyMsg("ctrl+l"))
	if h.app.ActivePage() != PageLogin {
		t.Fatalf("page after logout = %q, want login", h.app.ActivePage())
	}
	if !strings.Contains(h.app.View(), "You have been logged out.") {
		t.Error("login page missing logout notice")
	}
	h.send(keyMsg("ctrl+r"))
	page.form.setValue("Username", "janet")
	page.form.setValue("Email", "jane@example.com")
	page.form.setValue("Password", "password1")
	page.form.setValue("ConfirmPassword", "password1")
	h.send(keyMsg("enter"))
	if page.form.alert != "An account with this email already exists" {
		t.Errorf("alert = %q", page.form.alert)
	}
}

func TestForm_FocusCycles(t *testing.T) {
	t.Parallel()
	f := newForm(
		formField{Name: "Email", Label: "Email"},
		formField{Name: "Password", Label: "Password"},
	)
	if f.focus != 0 || !f.fields[0].input.Focused() {
		t.Fatal("first field not focused")
	}
	f.update(keyMsg("tab"))
	if f.focus != 1 || f.fields[0].input.Focused() {
		t.Fatalf("focus = %d after tab", f.focus)
	}
	f.update(keyMsg("tab"))
	if f.focus != 0 {
		t.Fatalf("focus = %d, want wrap to 0", f.focus)
	}
	f.update(keyMsg("shift+tab"))
	if f.focus != 1 {
		t.Fatalf("focus = %d, want 1", f.focus)
	}

	f.setErrors(map[string]string{"Email": "Email is required"})
	if f.focus != 0 {
		t.Errorf("setErrors did not focus first failing field")
	}
}
