package ui

import (
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/catalog"
	"github.com/desertthunder/marquee/internal/player"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/session"
	"github.com/desertthunder/marquee/internal/shared"
)

// Page identifies the screen currently shown.
type Page int

const (
	PageLanding Page = iota
	PageAuth
	PagePlayer
)

func (p Page) String() string {
	switch p {
	case PageAuth:
		return "auth"
	case PagePlayer:
		return "player"
	default:
		return "landing"
	}
}

const (
	defaultWidth  = 100
	defaultHeight = 40
)

// Options wires the model to its collaborators.
type Options struct {
	Movies  services.MovieSource
	Auth    services.Authenticator
	Store   *session.Store
	Config  *shared.Config
	Logger  *log.Logger
	Rand    *rand.Rand
	Browser func(string) error // defaults to [shared.OpenBrowser]
}

type toast struct {
	notice session.Notice
	seq    int
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	movies  services.MovieSource
	auth    services.Authenticator
	store   *session.Store
	config  *shared.Config
	logger  *log.Logger
	rng     *rand.Rand
	browser func(string) error

	navbar *session.Navbar
	flow   *session.Flow

	page    Page
	width   int
	height  int
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	landing  *landing
	form     *authForm
	viewing  player.View
	toast    *toast
	toastSeq int
	framing  bool
}

// NewModel creates the root model on the landing page.
func NewModel(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = catalog.NewRand()
	}
	store := opts.Store
	if store == nil {
		store = session.NewStore()
	}
	browser := opts.Browser
	if browser == nil {
		browser = shared.OpenBrowser
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.accent

	m := &Model{
		ctx:     ctx,
		movies:  opts.Movies,
		auth:    opts.Auth,
		store:   store,
		config:  cfg,
		logger:  logger,
		rng:     rng,
		browser: browser,
		navbar:  session.NewNavbar(store),
		flow:    session.NewFlow(opts.Auth, store, cfg.Session.RedirectDelay(), logger),
		width:   defaultWidth,
		height:  defaultHeight,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
	m.landing = newLanding(cfg, rng)
	m.form = newAuthForm()
	return m
}

// Init fetches the catalog and reconciles the navbar for the first page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchMovies(), m.navigate(PageLanding))
}

func (m *Model) fetchMovies() tea.Cmd {
	if m.movies == nil {
		return nil
	}
	m.landing.loading = true
	movies, ctx := m.movies, m.ctx
	return func() tea.Msg {
		records, err := movies.FetchAll(ctx)
		return moviesFetchedMsg(records, err)
	}
}

// navigate switches pages. Every navigation re-reads the stored session and starts
// verification of its token, if any.
func (m *Model) navigate(p Page) tea.Cmd {
	if p != PageLanding {
		m.landing.panel.Close()
		m.landing.clearSearch()
	}
	m.page = p
	m.logger.Debug("navigate", "page", p)

	token := m.navbar.Reconcile()
	if token == "" || m.auth == nil {
		return nil
	}
	auth, ctx := m.auth, m.ctx
	return func() tea.Msg {
		user, err := auth.Verify(ctx, token)
		return verifiedMsg(token, user, err)
	}
}

func (m *Model) openLink(link string) tea.Cmd {
	view, err := player.ParseLink(link)
	if err != nil {
		m.logger.Warn("invalid player link", "link", link, "error", err)
		return m.showToast(session.Notice{Message: err.Error(), Kind: session.NoticeDanger})
	}
	m.viewing = view
	return m.navigate(PagePlayer)
}

func (m *Model) showToast(n session.Notice) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = &toast{notice: n, seq: seq}
	return tea.Tick(m.config.Session.ToastDuration(), func(time.Time) tea.Msg {
		return toastExpiredMsg(seq)
	})
}

func (m *Model) logout() tea.Cmd {
	m.navbar.Logout()
	m.logger.Info("logged out")
	return m.navigate(PageLanding)
}

// Update is the single place state changes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.landing.resize(m.width)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case Msg:
		return m, m.handleMsg(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQ) {
			return m, tea.Quit
		}
		switch m.page {
		case PageAuth:
			return m, m.updateAuth(msg)
		case PagePlayer:
			return m, m.updatePlayer(msg)
		default:
			return m, m.updateLanding(msg)
		}
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgMoviesFetched:
		data := msg.data.(moviesFetched)
		m.landing.load(data, m.logger)
	case MsgVerified:
		data := msg.data.(verified)
		if data.err != nil {
			m.logger.Warn("token verification failed", "error", data.err)
			m.navbar.VerifyFailed(data.token)
			return nil
		}
		m.navbar.Verified(data.token, data.user)
	case MsgAuthDone:
		m.form.busy = false
		res := m.flow.Commit(msg.data.(session.Outcome))
		cmds := []tea.Cmd{m.showToast(res.Notice)}
		if res.Redirect {
			cmds = append(cmds, tea.Tick(res.Delay, func(time.Time) tea.Msg { return redirectMsg() }))
		}
		return tea.Batch(cmds...)
	case MsgRedirect:
		m.form.reset()
		return m.navigate(PageLanding)
	case MsgToastExpired:
		if m.toast != nil && m.toast.seq == msg.data.(int) {
			m.toast = nil
		}
	case MsgScrollFrame:
		if m.landing.step() {
			return tickFrame()
		}
		m.framing = false
	}
	return nil
}

// animate starts the frame loop unless one is already running.
func (m *Model) animate() tea.Cmd {
	if m.framing || !m.landing.animating() {
		return nil
	}
	m.framing = true
	return tickFrame()
}

func (m *Model) View() string {
	var body string
	switch m.page {
	case PageAuth:
		body = m.authView()
	case PagePlayer:
		body = m.playerView()
	default:
		body = m.landingView()
	}

	parts := []string{m.navbarView(), body}
	if m.toast != nil {
		style, ok := styles.toast[string(m.toast.notice.Kind)]
		if !ok {
			style = styles.toast[string(session.NoticeInfo)]
		}
		parts = append(parts, style.Render(m.toast.notice.Message))
	}
	parts = append(parts, m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) navbarView() string {
	items := []string{styles.accent.Render("MARQUEE")}
	for i, r := range catalog.Rows {
		if m.page == PageLanding && i == m.landing.focus {
			items = append(items, styles.navActive.Render(r.Label))
			continue
		}
		items = append(items, styles.muted.Render(r.Label))
	}

	if m.navbar.ShowProfile() {
		items = append(items, styles.profile.Render(m.navbar.Glyph()))
	} else {
		items = append(items, styles.button.Render("Sign In"), styles.button.Render("Sign Up"))
	}
	return lipgloss.NewStyle().MarginBottom(1).Render(strings.Join(items, "  "))
}

func (m *Model) helpView() string {
	var bindings []key.Binding
	switch m.page {
	case PageAuth:
		bindings = []key.Binding{m.keys.enter, m.keys.nextIn, m.keys.switchTo, m.keys.reveal, m.keys.back}
	case PagePlayer:
		bindings = []key.Binding{m.keys.play, m.keys.browser, m.keys.back, m.keys.quit}
	default:
		if m.landing.panel.IsOpen() {
			bindings = []key.Binding{m.keys.enter, m.keys.back}
			break
		}
		bindings = []key.Binding{m.keys.up, m.keys.left, m.keys.pageNext, m.keys.enter, m.keys.search}
		if m.navbar.ShowProfile() {
			bindings = append(bindings, m.keys.logout)
		} else {
			bindings = append(bindings, m.keys.auth)
		}
		bindings = append(bindings, m.keys.quit)
	}
	return lipgloss.NewStyle().MarginTop(1).Render(m.help.ShortHelpView(bindings))
}

// Page reports the page currently shown.
func (m *Model) Page() Page { return m.page }

// Navbar exposes the navbar state.
func (m *Model) Navbar() *session.Navbar { return m.navbar }

// Run starts the program in the alternate screen.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
