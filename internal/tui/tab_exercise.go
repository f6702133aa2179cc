package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/healthtoday/healthtoday/internal/fetch"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

const exerciseFailMsg = "Failed to load exercises. Please try again."

// ExerciseTab lists the exercise library one page at a time.
type ExerciseTab struct {
	ctx           context.Context
	pager         *fetch.Paginator[model.Exercise]
	clicks        model.ClickCounter
	log           zerolog.Logger
	reverseScroll bool
}

// NewExerciseTab creates the exercise tab.
func NewExerciseTab(deps TabDeps) *ExerciseTab {
	size := deps.ExercisePageSize
	if size <= 0 {
		size = model.DefaultExercisePageSize
	}
	return &ExerciseTab{
		ctx:           deps.Ctx,
		pager:         fetch.NewPaginator(size, deps.Exercises.Exercises, exerciseFailMsg),
		clicks:        deps.Clicks,
		log:           deps.Log,
		reverseScroll: deps.ReverseScrollWheel,
	}
}

func (t *ExerciseTab) ID() string    { return tabExercise }
func (t *ExerciseTab) Title() string { return "Exercise" }
func (t *ExerciseTab) Loading() bool { return t.pager.Loading() }
func (t *ExerciseTab) ItemCount() int {
	return len(t.pager.Items())
}

// Pager exposes the fetch state for tests and the status line.
func (t *ExerciseTab) Pager() *fetch.Paginator[model.Exercise] { return t.pager }

func (t *ExerciseTab) Mount() tea.Cmd {
	return t.fetchCmd(t.pager.Mount(t.ctx))
}

func (t *ExerciseTab) NextPage() tea.Cmd {
	req, ok := t.pager.Next(t.ctx)
	if !ok {
		return nil
	}
	return t.fetchCmd(req)
}

func (t *ExerciseTab) PrevPage() tea.Cmd {
	req, ok := t.pager.Prev(t.ctx)
	if !ok {
		return nil
	}
	return t.fetchCmd(req)
}

func (t *ExerciseTab) Reset() { t.pager.Reset() }

func (t *ExerciseTab) fetchCmd(req fetch.Request) tea.Cmd {
	pager := t.pager
	return func() tea.Msg {
		return TabDataMsg{TabID: tabExercise, Data: pager.Load(req)}
	}
}

func (t *ExerciseTab) Apply(msg TabDataMsg) tea.Cmd {
	res, ok := msg.Data.(fetch.Result[model.Exercise])
	if !ok {
		return nil
	}
	if !t.pager.Apply(res) {
		return nil
	}
	if res.Err != nil && !isCanceled(res.Err) {
		t.log.Error().Err(res.Err).Int("page", res.Page).Msg("load exercises")
	}
	return nil
}

// OnSelect opens the detail modal for the selected exercise and counts the
// interaction.
func (t *ExerciseTab) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	items := t.pager.Items()
	if selIdx < 0 || selIdx >= len(items) {
		return nil
	}
	t.clicks.Increment()
	return pushModal(newExerciseModal(items[selIdx], t.reverseScroll))
}

func (t *ExerciseTab) Render(ctx ViewContext, width, height int, selIdx int) string {
	title := deckTitleStyle.Render("Exercise Library")
	pageInfo := helpStyle.Render(pageIndicator(t.pager.Page(), t.pager.HasPrev(), t.pager.HasNext()))

	contentHeight := max(height-4, 1)
	items := t.pager.Items()

	var body string
	switch {
	case t.pager.Loading() && len(items) == 0:
		body = renderLoadingPlaceholder("Loading exercises...", width-4, contentHeight)
	case len(items) == 0 && t.pager.ErrMessage() != "":
		body = errorStyle.Render(t.pager.ErrMessage())
	case len(items) == 0:
		body = helpStyle.Render("No exercises")
	default:
		body = t.renderList(items, width-4, contentHeight, selIdx)
	}

	status := ""
	switch {
	case t.pager.Loading() && len(items) > 0:
		status = helpStyle.Render(spinnerFrame() + " Loading exercises...")
	case t.pager.ErrMessage() != "" && len(items) > 0:
		status = errorStyle.Render(t.pager.ErrMessage())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, status, pageInfo)
}

func (t *ExerciseTab) renderList(items []model.Exercise, width, height, selIdx int) string {
	start, end := listWindow(len(items), selIdx, height)
	nameWidth := max(width-24, 10)

	var lines []string
	for i := start; i < end; i++ {
		ex := items[i]
		name := truncate(titleCase(ex.Name), nameWidth)
		meta := truncate(ex.BodyPart+" · "+ex.Target, 22)
		line := fmt.Sprintf("%-*s %s", nameWidth, name, helpStyle.Render(meta))
		if i == selIdx {
			line = selectedRowStyle.Render(fmt.Sprintf("%-*s %s", nameWidth, name, meta))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func newExerciseModal(ex model.Exercise, reverseScroll bool) *DetailModal {
	var b strings.Builder
	b.WriteString(field("Body Part", ex.BodyPart) + "\n")
	b.WriteString(field("Target Muscle", ex.Target) + "\n")
	b.WriteString(field("Equipment", ex.Equipment) + "\n")
	if ex.GifURL != "" {
		b.WriteString(field("Demo", ex.GifURL) + "\n")
	}
	b.WriteString("\n" + labelStyle.Render("Instructions:") + "\n")
	if len(ex.Instructions) == 0 {
		b.WriteString(helpStyle.Render("No instructions available") + "\n")
	}
	for i, step := range ex.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return NewDetailModal("exercise", titleCase(ex.Name), b.String(), reverseScroll)
}

// pageIndicator renders "‹ Prev  Page N  Next ›" with disabled sides dimmed.
func pageIndicator(page int, hasPrev, hasNext bool) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	on := lipgloss.NewStyle().Foreground(ColorTeal)

	prev := dim.Render("‹ p: Prev")
	if hasPrev {
		prev = on.Render("‹ p: Prev")
	}
	next := dim.Render("n: Next ›")
	if hasNext {
		next = on.Render("n: Next ›")
	}
	return fmt.Sprintf("%s   Page %d   %s", prev, page, next)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
