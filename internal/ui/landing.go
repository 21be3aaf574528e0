package ui

import (
	"errors"
	"math/rand/v2"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/marquee/internal/carousel"
	"github.com/desertthunder/marquee/internal/catalog"
	"github.com/desertthunder/marquee/internal/player"
	"github.com/desertthunder/marquee/internal/shared"
)

const (
	cardGap        = 1
	arrowColumns   = 4
	minViewport    = 20
	defaultCardLen = 24
)

// row is one carousel on the landing page.
type row struct {
	id       catalog.RowID
	label    string
	ctrl     *carousel.Controller
	selected int
}

type landing struct {
	rng        *rand.Rand
	normalizer *catalog.Normalizer
	board      *catalog.Board
	corpus     *catalog.Corpus
	panel      *catalog.Panel
	rows       []*row
	focus      int
	hero       *catalog.Hero
	heroFocus  bool
	loading    bool
	input      textinput.Model
	results    list.Model
	cardWidth  int
	viewport   int
}

func newLanding(cfg *shared.Config, rng *rand.Rand) *landing {
	corpus := &catalog.Corpus{}
	l := &landing{
		rng:        rng,
		normalizer: catalog.NewNormalizer(rng),
		board:      catalog.NewBoard(),
		corpus:     corpus,
		panel:      catalog.NewPanel(catalog.NewIndex(corpus, cfg.Search.MaxResults)),
		cardWidth:  cfg.Carousel.CardWidth,
	}
	if l.cardWidth <= 0 {
		l.cardWidth = defaultCardLen
	}
	for _, r := range catalog.Rows {
		l.rows = append(l.rows, &row{
			id:    r.ID,
			label: r.Label,
			ctrl:  carousel.New(cfg.Carousel.Threshold, cfg.Carousel.StepRatio),
		})
	}

	l.input = textinput.New()
	l.input.Placeholder = "Search titles"
	l.input.Prompt = "🔍 "

	delegate := list.NewDefaultDelegate()
	l.results = list.New(nil, delegate, defaultWidth, 3*catalog.DefaultMaxResults)
	l.results.SetShowTitle(false)
	l.results.SetShowHelp(false)
	l.results.SetShowStatusBar(false)
	l.results.SetFilteringEnabled(false)
	l.results.SetShowPagination(false)

	l.resize(defaultWidth)
	return l
}

// load renders a fetch result into the hero, the rows and the search corpus.
func (l *landing) load(f moviesFetched, logger *log.Logger) {
	l.loading = false
	if f.err != nil {
		logger.Error("failed to load movies", "error", f.err)
		l.showMessage(catalog.MessageFetchFailed)
		return
	}

	movies, err := l.normalizer.Normalize(f.records)
	if err != nil {
		if errors.Is(err, shared.ErrNoValidContent) {
			logger.Warn("no movies with images", "records", len(f.records))
		}
		l.showMessage(catalog.MessageNoValidContent)
		return
	}

	if hero, ok := catalog.SelectHero(movies, l.rng); ok {
		l.hero = &hero
	}
	if err := l.board.RenderAll(movies, l.rng); err != nil {
		logger.Error("failed to render rows", "error", err)
	}
	l.corpus.Replace(movies)
	l.panel.Refresh()
	l.syncResults()
	l.mount()
	logger.Info("catalog loaded", "movies", len(movies))
}

func (l *landing) showMessage(msg string) {
	_ = l.board.ShowMessage(catalog.RowFeatured, msg)
	l.mount()
}

func (l *landing) cards(r *row) []catalog.Card {
	c, ok := l.board.Container(r.id)
	if !ok {
		return nil
	}
	return c.Cards
}

func (l *landing) cardSpan() int {
	return lipgloss.Width(l.renderCard(catalog.Card{}, false)) + cardGap
}

func (l *landing) contentWidth(r *row) int {
	n := len(l.cards(r))
	if n == 0 {
		return 0
	}
	return n*l.cardSpan() - cardGap
}

func (l *landing) mount() {
	for _, r := range l.rows {
		r.ctrl.Mount(l.viewport, l.contentWidth(r))
	}
}

func (l *landing) resize(width int) {
	l.viewport = max(minViewport, width-arrowColumns)
	l.input.Width = max(minViewport, width/2)
	l.results.SetWidth(width)
	for _, r := range l.rows {
		r.ctrl.OnResize(l.viewport)
	}
}

// step advances every animating row by one frame.
func (l *landing) step() bool {
	more := false
	for _, r := range l.rows {
		if r.ctrl.Step() {
			more = true
		}
	}
	return more
}

func (l *landing) animating() bool {
	for _, r := range l.rows {
		if r.ctrl.Animating() {
			return true
		}
	}
	return false
}

func (l *landing) focused() *row { return l.rows[l.focus] }

// reveal requests scrolls until the selected card lies inside the row's target window.
func (l *landing) reveal(r *row) {
	span := l.cardSpan()
	left := r.selected * span
	right := left + span - cardGap
	for range len(l.cards(r)) {
		target := r.ctrl.Target()
		switch {
		case left < target:
			r.ctrl.Prev()
		case right > target+r.ctrl.State().ViewportWidth:
			r.ctrl.Next()
		default:
			return
		}
		if r.ctrl.Target() == target {
			return
		}
	}
}

// page scrolls the focused row by one step and selects the first card in the new window.
func (l *landing) page(forward bool) {
	r := l.focused()
	if forward {
		r.ctrl.Next()
	} else {
		r.ctrl.Prev()
	}
	span := l.cardSpan()
	r.selected = min(max(0, len(l.cards(r))-1), (r.ctrl.Target()+span-1)/span)
}

func (l *landing) clearSearch() {
	l.input.Reset()
	l.input.Blur()
	l.syncResults()
}

func (l *landing) syncResults() {
	l.results.SetItems(searchItems(l.panel.Results()))
	l.results.Select(0)
}

func (m *Model) updateLanding(msg tea.KeyMsg) tea.Cmd {
	l := m.landing
	if l.panel.IsOpen() {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.search):
		l.panel.Toggle()
		return l.input.Focus()
	case key.Matches(msg, m.keys.auth):
		if m.navbar.ShowAuthButtons() {
			return m.navigate(PageAuth)
		}
	case key.Matches(msg, m.keys.logout):
		if m.navbar.ShowProfile() {
			return m.logout()
		}
	case key.Matches(msg, m.keys.up):
		if l.focus == 0 && l.hero != nil {
			l.heroFocus = true
		}
		l.focus = max(0, l.focus-1)
	case key.Matches(msg, m.keys.down):
		if l.heroFocus {
			l.heroFocus = false
			return nil
		}
		l.focus = min(len(l.rows)-1, l.focus+1)
	case l.heroFocus && key.Matches(msg, m.keys.enter, m.keys.play):
		return m.openLink(l.hero.Link)
	case l.heroFocus:
		// the hero has no scroll state
		return nil
	case key.Matches(msg, m.keys.left):
		r := l.focused()
		r.selected = max(0, r.selected-1)
		l.reveal(r)
		return m.animate()
	case key.Matches(msg, m.keys.right):
		r := l.focused()
		r.selected = min(max(0, len(l.cards(r))-1), r.selected+1)
		l.reveal(r)
		return m.animate()
	case key.Matches(msg, m.keys.pagePrev):
		l.page(false)
		return m.animate()
	case key.Matches(msg, m.keys.pageNext):
		l.page(true)
		return m.animate()
	case key.Matches(msg, m.keys.enter):
		cards := l.cards(l.focused())
		if len(cards) > 0 {
			return m.openLink(cards[l.focused().selected].Link)
		}
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	l := m.landing
	// with nothing typed, the search key toggles the panel closed again
	if l.input.Value() == "" && key.Matches(msg, m.keys.search) {
		l.panel.Toggle()
		l.clearSearch()
		return nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		l.panel.Close()
		l.clearSearch()
		return nil
	case tea.KeyUp:
		l.results.CursorUp()
		return nil
	case tea.KeyDown:
		l.results.CursorDown()
		return nil
	case tea.KeyEnter:
		item, ok := l.results.SelectedItem().(searchItem)
		if !ok {
			return nil
		}
		l.input.Blur()
		return m.openLink(item.result.Link)
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	if l.input.Value() != l.panel.Input() {
		l.panel.SetInput(l.input.Value())
		l.syncResults()
	}
	return cmd
}

func (m *Model) landingView() string {
	l := m.landing
	if l.loading {
		return m.spinner.View() + " Loading movies…"
	}

	var parts []string
	if l.panel.IsOpen() {
		parts = append(parts, l.searchView())
	}
	if l.hero != nil {
		parts = append(parts, l.heroView(m.width))
	}
	for i, r := range l.rows {
		parts = append(parts, l.rowView(r, !l.heroFocus && i == l.focus))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (l *landing) searchView() string {
	body := []string{l.input.View()}
	switch {
	case l.panel.Message() != "":
		body = append(body, styles.warn.Render(l.panel.Message()))
	case len(l.panel.Results().Items) > 0:
		body = append(body, l.results.View())
	}
	return styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (l *landing) heroView(width int) string {
	h := l.hero
	lines := []string{
		styles.title.Render(h.Title),
		"⭐ " + player.FormatRating(h.Rating),
		styles.muted.Render(imageName(h.Image)),
	}
	if l.heroFocus {
		lines = append(lines, styles.button.Render("▶ Play"))
	}
	return styles.hero.Width(max(minViewport, width-arrowColumns)).Render(strings.Join(lines, "\n"))
}

func (l *landing) renderCard(c catalog.Card, focused bool) string {
	style := styles.card
	if focused {
		style = styles.cardFocus
	}
	inner := l.cardWidth - 2
	title := ansi.Truncate(c.Title, inner, "…")
	img := c.Image
	if img == "" {
		img = c.Fallback
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		ansi.Truncate("▣ "+imageName(img), inner, "…"),
		"⭐ " + player.FormatRating(c.Rating),
	}
	return style.Width(l.cardWidth).Render(strings.Join(lines, "\n"))
}

func (l *landing) rowView(r *row, focused bool) string {
	label := styles.muted.Render(r.label)
	if focused {
		label = styles.accent.Render(r.label)
	}

	c, _ := l.board.Container(r.id)
	if c.Message != "" {
		return label + "\n" + styles.warn.Render(c.Message) + "\n"
	}
	if len(c.Cards) == 0 {
		return label + "\n"
	}

	blocks := make([]string, 0, 2*len(c.Cards))
	for i, card := range c.Cards {
		if i > 0 {
			blocks = append(blocks, strings.Repeat(" ", cardGap))
		}
		blocks = append(blocks, l.renderCard(card, focused && i == r.selected))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)

	state := r.ctrl.State()
	lines := strings.Split(strip, "\n")
	for i, line := range lines {
		lines[i] = ansi.Cut(line, state.ScrollOffset, state.ScrollOffset+state.ViewportWidth)
	}

	prev, next := " ", " "
	if r.ctrl.ShowPrev() {
		prev = "‹"
	}
	if r.ctrl.ShowNext() {
		next = "›"
	}
	height := len(lines)
	arrows := func(glyph string) string {
		col := make([]string, height)
		for i := range col {
			col[i] = " "
		}
		col[height/2] = styles.accent.Render(glyph)
		return strings.Join(col, "\n")
	}
	return label + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, arrows(prev), " ", strings.Join(lines, "\n"), " ", arrows(next))
}

// imageName shortens an image URL to its file name.
func imageName(u string) string {
	if u == "" {
		return ""
	}
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return path.Base(u)
}
