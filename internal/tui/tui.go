package tui

/*
 * The command markpad edit uses Bubble Tea under the hood to provide the
 * interactive two-pane editor. All BubbleTea-related code is present in this
 * file to make easy to refactor or switch to another library someday.
 */

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/pkg/clock"
	"github.com/markpad/markpad/pkg/markdown"
)

var (
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPaneStyle = paneStyle.Copy().BorderForeground(lipgloss.Color("62"))
	statusStyle      = lipgloss.NewStyle().Faint(true).MarginLeft(1)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).MarginLeft(1)
	helpText         = "tab: switch pane • ctrl+z/ctrl+y: undo/redo • ctrl+b/ctrl+k: bold/code • ctrl+f: find • ctrl+n/ctrl+p: next/prev match • ctrl+s: share • ctrl+c: quit"
)

type focusArea int

const (
	focusEditor focusArea = iota
	focusPreview
	focusSearch
)

// noticeMsg carries a session notice into the Bubble Tea loop.
type noticeMsg editor.Event

// shareMsg carries the outcome of an asynchronous share request. seq ties the
// result to the request that started it: a result arriving after the dialog
// moved on is discarded, not applied to a stale view.
type shareMsg struct {
	seq    int
	result editor.ShareResult
}

type Model struct {
	session *editor.Session
	sharer  *editor.Sharer
	sync    *editor.ScrollSync

	ta     textarea.Model
	vp     viewport.Model
	search textinput.Model

	focus       focusArea
	width       int
	height      int
	lastLine    int
	status      string
	notice      string
	shareSeq    int
	shareCancel context.CancelFunc

	notices chan editor.Event
}

func NewModel(session *editor.Session, sharer *editor.Sharer) *Model {
	ta := textarea.New()
	ta.Placeholder = "Start writing Markdown..."
	ta.SetValue(session.Text())
	ta.Focus()

	vp := viewport.New(0, 0)

	search := textinput.New()
	search.Placeholder = "find (regular expression)"
	search.Prompt = "/"

	m := &Model{
		session: session,
		sharer:  sharer,
		ta:      ta,
		vp:      vp,
		search:  search,
		notices: make(chan editor.Event, 16),
	}
	m.sync = editor.NewScrollSync(clock.CurrentClock(), &textareaScrollView{model: m}, &viewportScrollView{vp: &m.vp}, 0)

	session.Bus().Subscribe(func(e editor.Event) {
		if e.Kind != editor.EventNotice {
			return
		}
		select {
		case m.notices <- e:
		default: // Dropping a notice beats blocking the session
		}
	})

	m.refreshPreview()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForNotice())
}

func (m *Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.notices)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case noticeMsg:
		m.notice = msg.Message
		return m, m.waitForNotice()

	case shareMsg:
		if msg.seq != m.shareSeq {
			return m, nil // Stale result from an abandoned request
		}
		m.status = shareStatus(msg.result)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {

	case "ctrl+c":
		m.session.Close()
		return m, tea.Quit

	case "tab":
		if m.focus != focusSearch {
			m.toggleFocus()
			return m, nil
		}

	case "ctrl+z":
		if m.session.Undo() {
			m.reloadBuffer()
		}
		return m, nil

	case "ctrl+y":
		if m.session.Redo() {
			m.reloadBuffer()
		}
		return m, nil

	case "ctrl+b":
		m.insertSnippet("**"+editor.Placeholder+"**", editor.InsertWrap)
		return m, nil

	case "ctrl+k":
		m.insertSnippet("```\n"+editor.Placeholder+"\n```", editor.InsertBlock)
		return m, nil

	case "ctrl+f":
		m.focus = focusSearch
		m.search.Focus()
		m.ta.Blur()
		return m, nil

	case "ctrl+n":
		m.jumpToMatch(m.session.NextMatch())
		return m, nil

	case "ctrl+p":
		m.jumpToMatch(m.session.PrevMatch())
		return m, nil

	case "ctrl+s":
		if m.shareCancel != nil {
			m.shareCancel() // Abandon the in-flight request
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.shareCancel = cancel
		m.shareSeq++
		return m, m.buildShare(ctx, m.shareSeq, m.session.Text())

	case "esc":
		if m.focus == focusSearch {
			m.search.Blur()
			m.focus = focusEditor
			m.ta.Focus()
			return m, nil
		}
	}

	switch m.focus {
	case focusSearch:
		return m.updateSearch(msg)
	case focusPreview:
		return m.updatePreview(msg)
	default:
		return m.updateEditor(msg)
	}
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.ta.Value()
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)

	if after := m.ta.Value(); after != before {
		m.session.SetText(after)
		m.refreshPreview()
	}
	if line := m.ta.Line(); line != m.lastLine {
		m.lastLine = line
		m.sync.OnScroll(editor.PaneEditor)
	}
	return m, cmd
}

func (m *Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.vp.YOffset
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	if m.vp.YOffset != before {
		m.sync.OnScroll(editor.PanePreview)
	}
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.session.SetSearchQuery(m.search.Value(), false)
		m.search.Blur()
		m.focus = focusEditor
		m.ta.Focus()
		m.jumpToMatch(m.session.CurrentMatch())
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// jumpToMatch moves the caret to a search match and shows its ordinal.
func (m *Model) jumpToMatch(span editor.Span, ok bool) {
	matches := m.session.SearchMatches()
	if !ok || len(matches) == 0 {
		m.status = "No match"
		return
	}
	ordinal := 1
	for i, candidate := range matches {
		if candidate == span {
			ordinal = i + 1
			break
		}
	}
	m.status = fmt.Sprintf("Match %d/%d", ordinal, len(matches))
	m.gotoOffset(span.Start)
}

func (m *Model) insertSnippet(template string, mode editor.InsertMode) {
	// The textarea selection is not exposed; insert at the caret
	offset := caretOffset(m.session.Text(), m.ta.Line(), m.ta.LineInfo().ColumnOffset)
	m.session.SetSelection(offset, offset)
	caret := m.session.InsertAtSelection(template, mode)
	m.reloadBuffer()
	m.gotoOffset(caret)
}

// gotoOffset moves the textarea cursor to the given byte offset.
func (m *Model) gotoOffset(offset int) {
	row, col := offsetPosition(m.session.Text(), offset)
	for previous := -1; m.ta.Line() != row && m.ta.Line() != previous; {
		previous = m.ta.Line()
		if previous < row {
			m.ta.CursorDown()
		} else {
			m.ta.CursorUp()
		}
	}
	m.ta.SetCursor(col)
}

func (m *Model) buildShare(ctx context.Context, seq int, text string) tea.Cmd {
	return func() tea.Msg {
		return shareMsg{
			seq:    seq,
			result: m.sharer.BuildShareReference(ctx, text),
		}
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusEditor {
		m.focus = focusPreview
		m.ta.Blur()
	} else {
		m.focus = focusEditor
		m.ta.Focus()
	}
}

func (m *Model) reloadBuffer() {
	m.ta.SetValue(m.session.Text())
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	m.vp.SetContent(markdown.ToHTML(m.session.Text()))
	m.sync.OnScroll(editor.PaneEditor)
}

func (m *Model) resize() {
	paneWidth := m.width/2 - 4
	paneHeight := m.height - 4
	if paneWidth < 10 {
		paneWidth = 10
	}
	if paneHeight < 3 {
		paneHeight = 3
	}
	m.ta.SetWidth(paneWidth)
	m.ta.SetHeight(paneHeight)
	m.vp.Width = paneWidth
	m.vp.Height = paneHeight
}

func (m *Model) View() string {
	editorStyle, previewStyle := focusedPaneStyle, paneStyle
	if m.focus == focusPreview {
		editorStyle, previewStyle = paneStyle, focusedPaneStyle
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		editorStyle.Render(m.ta.View()),
		previewStyle.Render(m.vp.View()),
	)

	bottom := statusStyle.Render(helpText)
	if m.focus == focusSearch {
		bottom = m.search.View()
	} else if m.status != "" {
		bottom = statusStyle.Render(m.status)
	}
	if m.notice != "" {
		bottom += noticeStyle.Render(m.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panes, bottom)
}

func shareStatus(result editor.ShareResult) string {
	switch result.Kind {
	case editor.ShareDirect:
		return "Share link ready to copy: " + result.URL
	case editor.ShareShortened:
		return "Shortened share link: " + result.URL
	default:
		return "Document too large to share as a link: copy the raw content or export a file instead"
	}
}

// Run starts the interactive editor and blocks until the user quits.
func Run(session *editor.Session, sharer *editor.Sharer) error {
	_, err := tea.NewProgram(NewModel(session, sharer), tea.WithAltScreen()).Run()
	return err
}

/*
 * Scroll adapters
 *
 * Both panes implement editor.ScrollView so the synchronizer can mirror
 * proportional positions without knowing about Bubble Tea widgets.
 */

type textareaScrollView struct {
	model *Model
}

func (v *textareaScrollView) lineCount() int {
	return strings.Count(v.model.session.Text(), "\n") + 1
}

func (v *textareaScrollView) ScrollFraction() float64 {
	total := v.lineCount() - 1
	if total <= 0 {
		return 0
	}
	return clampFraction(float64(v.model.ta.Line()) / float64(total))
}

func (v *textareaScrollView) SetScrollFraction(fraction float64) {
	target := int(math.Round(clampFraction(fraction) * float64(v.lineCount()-1)))
	for previous := -1; v.model.ta.Line() != target && v.model.ta.Line() != previous; {
		previous = v.model.ta.Line()
		if previous < target {
			v.model.ta.CursorDown()
		} else {
			v.model.ta.CursorUp()
		}
	}
}

type viewportScrollView struct {
	vp *viewport.Model
}

func (v *viewportScrollView) ScrollFraction() float64 {
	return clampFraction(v.vp.ScrollPercent())
}

func (v *viewportScrollView) SetScrollFraction(fraction float64) {
	scrollable := v.vp.TotalLineCount() - v.vp.Height
	if scrollable <= 0 {
		v.vp.SetYOffset(0)
		return
	}
	v.vp.SetYOffset(int(math.Round(clampFraction(fraction) * float64(scrollable))))
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// caretOffset converts a row/column position to a byte offset.
func caretOffset(text string, row, col int) int {
	offset := 0
	for i, line := range strings.Split(text, "\n") {
		if i == row {
			if col > len(line) {
				col = len(line)
			}
			return offset + col
		}
		offset += len(line) + 1
	}
	return len(text)
}

// offsetPosition is the inverse of caretOffset.
func offsetPosition(text string, offset int) (row, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	row = strings.Count(before, "\n")
	col = offset - (strings.LastIndexByte(before, '\n') + 1)
	return row, col
}
