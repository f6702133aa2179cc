package tui

import (
	"context"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/healthtoday/healthtoday/internal/fetch"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

const newsFailMsg = "Failed to load news. Please try again."

// Swapped out in tests.
var (
	writeClipboard = clipboard.WriteAll
	openURL        = browser.OpenURL
)

func init() {
	// The browser launcher echoes to the terminal the TUI is drawing on.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// NewsTab pages through the health news feed.
type NewsTab struct {
	ctx           context.Context
	pager         *fetch.Paginator[model.NewsArticle]
	clicks        model.ClickCounter
	log           zerolog.Logger
	keys          KeyMap
	reverseScroll bool
}

// NewNewsTab creates the news tab.
func NewNewsTab(deps TabDeps) *NewsTab {
	size := deps.NewsPageSize
	if size <= 0 {
		size = model.DefaultNewsPageSize
	}
	return &NewsTab{
		ctx:           deps.Ctx,
		pager:         fetch.NewPaginator(size, deps.News.News, newsFailMsg),
		clicks:        deps.Clicks,
		log:           deps.Log,
		keys:          deps.Keys,
		reverseScroll: deps.ReverseScrollWheel,
	}
}

func (t *NewsTab) ID() string     { return tabNews }
func (t *NewsTab) Title() string  { return "News" }
func (t *NewsTab) Loading() bool  { return t.pager.Loading() }
func (t *NewsTab) ItemCount() int { return len(t.pager.Items()) }
func (t *NewsTab) Reset()         { t.pager.Reset() }

// Pager exposes the fetch state for tests and the status line.
func (t *NewsTab) Pager() *fetch.Paginator[model.NewsArticle] { return t.pager }

func (t *NewsTab) Mount() tea.Cmd {
	return t.fetchCmd(t.pager.Mount(t.ctx))
}

func (t *NewsTab) NextPage() tea.Cmd {
	req, ok := t.pager.Next(t.ctx)
	if !ok {
		return nil
	}
	return t.fetchCmd(req)
}

func (t *NewsTab) PrevPage() tea.Cmd {
	req, ok := t.pager.Prev(t.ctx)
	if !ok {
		return nil
	}
	return t.fetchCmd(req)
}

func (t *NewsTab) fetchCmd(req fetch.Request) tea.Cmd {
	pager := t.pager
	return func() tea.Msg {
		return TabDataMsg{TabID: tabNews, Data: pager.Load(req)}
	}
}

func (t *NewsTab) Apply(msg TabDataMsg) tea.Cmd {
	res, ok := msg.Data.(fetch.Result[model.NewsArticle])
	if !ok {
		return nil
	}
	if !t.pager.Apply(res) {
		return nil
	}
	if res.Err != nil && !isCanceled(res.Err) {
		t.log.Error().Err(res.Err).Int("page", res.Page).Msg("load news")
	}
	return nil
}

// OnSelect opens the selected article and counts the interaction.
func (t *NewsTab) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	items := t.pager.Items()
	if selIdx < 0 || selIdx >= len(items) {
		return nil
	}
	t.clicks.Increment()
	return pushModal(newNewsModal(items[selIdx], t.keys, t.reverseScroll, t.log))
}

func (t *NewsTab) Render(ctx ViewContext, width, height int, selIdx int) string {
	title := deckTitleStyle.Render("Latest Health News")
	pageInfo := helpStyle.Render(pageIndicator(t.pager.Page(), t.pager.HasPrev(), t.pager.HasNext()))

	contentHeight := max(height-4, 1)
	items := t.pager.Items()

	var body string
	switch {
	case t.pager.Loading():
		body = renderLoadingPlaceholder("Loading news...", width-4, contentHeight)
	case len(items) == 0 && t.pager.ErrMessage() != "":
		body = errorStyle.Render(t.pager.ErrMessage())
	case len(items) == 0:
		body = helpStyle.Render("No news on this page")
	default:
		body = t.renderCards(items, width-4, contentHeight, selIdx)
	}

	status := ""
	if t.pager.ErrMessage() != "" && len(items) > 0 && !t.pager.Loading() {
		status = errorStyle.Render(t.pager.ErrMessage())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, pageInfo)
}

// renderCards draws each article as a three-line card: source, title, and
// a read-more hint.
func (t *NewsTab) renderCards(items []model.NewsArticle, width, height, selIdx int) string {
	const cardLines = 4
	start, end := listWindow(len(items), selIdx, max(height/cardLines, 1))

	sourceStyle := lipgloss.NewStyle().Foreground(ColorTeal).Bold(true)
	var cards []string
	for i := start; i < end; i++ {
		a := items[i]
		marker := "  "
		titleStyle := lipgloss.NewStyle().Foreground(ColorWhite)
		if i == selIdx {
			marker = lipgloss.NewStyle().Foreground(ColorTeal).Render("▌ ")
			titleStyle = titleStyle.Bold(true)
		}
		cards = append(cards, strings.Join([]string{
			marker + sourceStyle.Render(truncate(a.Source, width-2)),
			marker + titleStyle.Render(truncate(a.Title, width-2)),
			marker + helpStyle.Render("Read more ↵"),
			"",
		}, "\n"))
	}
	return strings.Join(cards, "\n")
}

func newNewsModal(a model.NewsArticle, keys KeyMap, reverseScroll bool, log zerolog.Logger) *DetailModal {
	desc := a.Description
	if strings.TrimSpace(desc) == "" {
		desc = helpStyle.Render("No description available")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(ColorTeal).Bold(true).Render(a.Source) + "\n\n")
	b.WriteString(labelStyle.Render(a.Title) + "\n\n")
	b.WriteString(desc + "\n\n")
	b.WriteString(field("Link", a.Link) + "\n")

	d := NewDetailModal("news", "News Article", b.String(), reverseScroll)
	link := a.Link
	if link == "" {
		return d
	}
	d.status = []string{
		keys.CopyLink.Help().Key + ": Copy link",
		keys.OpenLink.Help().Key + ": Open in browser",
	}
	d.onKey = func(msg tea.KeyMsg) (bool, tea.Cmd) {
		switch {
		case key.Matches(msg, keys.CopyLink):
			return true, linkCmd(log, "copy link", func() error { return writeClipboard(link) },
				"Copied "+link, "Could not copy link")
		case key.Matches(msg, keys.OpenLink):
			return true, linkCmd(log, "open link", func() error { return openURL(link) },
				"Opened "+link, "Could not open link")
		}
		return false, nil
	}
	return d
}

// linkCmd runs do off the update loop and reports the outcome on the status line.
func linkCmd(log zerolog.Logger, op string, do func() error, ok, failed string) tea.Cmd {
	return func() tea.Msg {
		if err := do(); err != nil {
			log.Warn().Err(err).Msg(op)
			return notify(failed)()
		}
		return notify(ok)()
	}
}
