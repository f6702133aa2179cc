package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/healthtoday/healthtoday/internal/auth"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

// Session is the identity provider as seen by the TUI.
type Session interface {
	model.Authenticator
	Current() (model.User, bool)
}

type signInResultMsg struct {
	user model.User
	err  error
}

type signUpResultMsg struct {
	user model.User
	err  error
}

// LoginPage collects email and password and signs the user in.
type LoginPage struct {
	ctx     context.Context
	session Session
	log     zerolog.Logger
	form    *form
}

// NewLoginPage creates the login page.
func NewLoginPage(ctx context.Context, session Session, log zerolog.Logger) *LoginPage {
	return &LoginPage{
		ctx:     ctx,
		session: session,
		log:     log,
		form: newForm(
			formField{Name: "Email", Label: "Email"},
			formField{Name: "Password", Label: "Password"},
		),
	}
}

func (p *LoginPage) ID() string          { return PageLogin }
func (p *LoginPage) SetFlash(msg string) { p.form.notice = msg }

func (p *LoginPage) Init() tea.Cmd {
	p.form.setFocus(0)
	return nil
}

func (p *LoginPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if p.form.busy {
			return spinnerTick(), nil
		}
	case signInResultMsg:
		p.form.busy = false
		if msg.err != nil {
			p.log.Warn().Err(msg.err).Str("code", auth.Code(msg.err)).Msg("sign in failed")
			p.form.alert = auth.LoginMessage(msg.err)
			return nil, nil
		}
		p.form.reset()
		return nil, &PageNav{PageID: PageDashboard, Flash: "Login successful"}
	case tea.KeyMsg:
		if msg.String() == "ctrl+r" && !p.form.busy {
			p.form.reset()
			return nil, &PageNav{PageID: PageRegister}
		}
		action, cmd := p.form.update(msg)
		switch action {
		case formBack:
			p.form.reset()
			return nil, &PageNav{PageID: PageWelcome}
		case formSubmit:
			return p.submit(), nil
		}
		return cmd, nil
	}
	return nil, nil
}

func (p *LoginPage) submit() tea.Cmd {
	f := auth.LoginForm{
		Email:    p.form.value("Email"),
		Password: p.form.value("Password"),
	}
	p.form.alert = ""
	p.form.notice = ""
	if errs := auth.ValidateLogin(f); errs != nil {
		p.form.setErrors(errs)
		return nil
	}
	p.form.setErrors(nil)
	p.form.busy = true

	ctx, session := p.ctx, p.session
	return tea.Batch(spinnerTick(), func() tea.Msg {
		u, err := session.SignIn(ctx, f.Email, f.Password)
		return signInResultMsg{user: u, err: err}
	})
}

func (p *LoginPage) View(width, height int) string {
	return p.form.view(
		"Login to your account",
		"",
		"Enter: Login • Tab: Next field • Ctrl+R: Register • Esc: Back",
		width, height,
	)
}

// RegisterPage creates a new account.
type RegisterPage struct {
	ctx     context.Context
	session Session
	log     zerolog.Logger
	form    *form
}

// NewRegisterPage creates the register page.
func NewRegisterPage(ctx context.Context, session Session, log zerolog.Logger) *RegisterPage {
	return &RegisterPage{
		ctx:     ctx,
		session: session,
		log:     log,
		form: newForm(
			formField{Name: "Username", Label: "Username"},
			formField{Name: "Email", Label: "Email"},
			formField{Name: "Password", Label: "Password"},
			formField{Name: "ConfirmPassword", Label: "Confirm Password"},
		),
	}
}

func (p *RegisterPage) ID() string          { return PageRegister }
func (p *RegisterPage) SetFlash(msg string) { p.form.notice = msg }

func (p *RegisterPage) Init() tea.Cmd {
	p.form.setFocus(0)
	return nil
}

func (p *RegisterPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case SpinnerTickMsg:
		if p.form.busy {
			return spinnerTick(), nil
		}
	case signUpResultMsg:
		p.form.busy = false
		if msg.err != nil {
			p.log.Warn().Err(msg.err).Str("code", auth.Code(msg.err)).Msg("sign up failed")
			p.form.alert = auth.RegisterMessage(msg.err)
			return nil, nil
		}
		p.form.reset()
		return nil, &PageNav{PageID: PageDashboard, Flash: "Account created successfully!"}
	case tea.KeyMsg:
		if msg.String() == "ctrl+l" && !p.form.busy {
			p.form.reset()
			return nil, &PageNav{PageID: PageLogin}
		}
		action, cmd := p.form.update(msg)
		switch action {
		case formBack:
			p.form.reset()
			return nil, &PageNav{PageID: PageWelcome}
		case formSubmit:
			return p.submit(), nil
		}
		return cmd, nil
	}
	return nil, nil
}

func (p *RegisterPage) submit() tea.Cmd {
	f := auth.RegisterForm{
		Username:        p.form.value("Username"),
		Email:           p.form.value("Email"),
		Password:        p.form.value("Password"),
		ConfirmPassword: p.form.value("ConfirmPassword"),
	}
	p.form.alert = ""
	p.form.notice = ""
	if errs := auth.ValidateRegister(f); errs != nil {
		p.form.setErrors(errs)
		return nil
	}
	p.form.setErrors(nil)
	p.form.busy = true

	ctx, session := p.ctx, p.session
	return tea.Batch(spinnerTick(), func() tea.Msg {
		u, err := session.SignUp(ctx, f.Username, f.Email, f.Password)
		return signUpResultMsg{user: u, err: err}
	})
}

func (p *RegisterPage) View(width, height int) string {
	return p.form.view(
		"Create an Account",
		"",
		"Enter: Register • Tab: Next field • Ctrl+L: Login • Esc: Back",
		width, height,
	)
}
