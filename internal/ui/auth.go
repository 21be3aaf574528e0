package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/marquee/internal/session"
)

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldPassword
	fieldConfirm
)

// authForm is the sign in / sign up page. Both tabs share the inputs, so typed values survive a tab switch.
type authForm struct {
	mode     session.Mode
	inputs   map[field]*textinput.Model
	focus    int
	revealed bool
	busy     bool
}

func newAuthForm() *authForm {
	f := &authForm{mode: session.ModeSignIn, inputs: make(map[field]*textinput.Model)}
	placeholders := map[field]string{
		fieldName:     "Name",
		fieldEmail:    "Email",
		fieldPassword: "Password",
		fieldConfirm:  "Confirm password",
	}
	for fld, ph := range placeholders {
		in := textinput.New()
		in.Placeholder = ph
		in.Prompt = "› "
		if fld == fieldPassword || fld == fieldConfirm {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[fld] = &in
	}
	f.focusCurrent()
	return f
}

// fields lists the inputs shown for the current tab.
func (f *authForm) fields() []field {
	if f.mode == session.ModeSignUp {
		return []field{fieldName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []field{fieldEmail, fieldPassword}
}

func (f *authForm) current() *textinput.Model {
	return f.inputs[f.fields()[f.focus]]
}

func (f *authForm) focusCurrent() tea.Cmd {
	for _, in := range f.inputs {
		in.Blur()
	}
	return f.current().Focus()
}

func (f *authForm) move(delta int) tea.Cmd {
	n := len(f.fields())
	f.focus = (f.focus + delta + n) % n
	return f.focusCurrent()
}

func (f *authForm) switchMode() tea.Cmd {
	if f.mode == session.ModeSignIn {
		f.mode = session.ModeSignUp
	} else {
		f.mode = session.ModeSignIn
	}
	f.focus = 0
	return f.focusCurrent()
}

// toggleReveal flips both password inputs between masked and plain text.
func (f *authForm) toggleReveal() {
	f.revealed = !f.revealed
	mode := textinput.EchoPassword
	if f.revealed {
		mode = textinput.EchoNormal
	}
	f.inputs[fieldPassword].EchoMode = mode
	f.inputs[fieldConfirm].EchoMode = mode
}

func (f *authForm) value() session.Form {
	return session.Form{
		Name:     f.inputs[fieldName].Value(),
		Email:    f.inputs[fieldEmail].Value(),
		Password: f.inputs[fieldPassword].Value(),
		Confirm:  f.inputs[fieldConfirm].Value(),
	}
}

func (f *authForm) reset() {
	for _, in := range f.inputs {
		in.Reset()
	}
	f.mode = session.ModeSignIn
	f.focus = 0
	f.busy = false
	f.focusCurrent()
}

func (m *Model) updateAuth(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	switch {
	case key.Matches(msg, m.keys.back):
		return m.navigate(PageLanding)
	case key.Matches(msg, m.keys.switchTo):
		return f.switchMode()
	case key.Matches(msg, m.keys.reveal):
		f.toggleReveal()
		return nil
	case key.Matches(msg, m.keys.nextIn):
		return f.move(1)
	case key.Matches(msg, m.keys.prevIn):
		return f.move(-1)
	case key.Matches(msg, m.keys.enter):
		return m.submit()
	}

	in := f.current()
	updated, cmd := in.Update(msg)
	*in = updated
	return cmd
}

// submit validates locally, then sends the request in the background. A second
// submit while one is in flight is ignored.
func (m *Model) submit() tea.Cmd {
	f := m.form
	if f.busy {
		return nil
	}

	mode, form := f.mode, f.value()
	if err := session.Validate(mode, form); err != nil {
		return m.showToast(session.Notice{Message: err.Error(), Kind: session.NoticeDanger})
	}
	if m.auth == nil {
		return nil
	}

	f.busy = true
	flow, ctx := m.flow, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return authDoneMsg(flow.Submit(ctx, mode, form))
	})
}

func (m *Model) authView() string {
	f := m.form
	signIn, signUp := styles.tab.Render("Sign In"), styles.tab.Render("Sign Up")
	if f.mode == session.ModeSignIn {
		signIn = styles.tabActive.Render("Sign In")
	} else {
		signUp = styles.tabActive.Render("Sign Up")
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, signIn, " ", signUp), ""}
	for _, fld := range f.fields() {
		lines = append(lines, f.inputs[fld].View())
	}
	lines = append(lines, "")

	label := "Sign In"
	if f.mode == session.ModeSignUp {
		label = "Create Account"
	}
	if f.busy {
		label = m.spinner.View() + " " + label + "…"
	}
	lines = append(lines, styles.button.Render(label))
	return styles.panel.Render(strings.Join(lines, "\n"))
}
