package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/log"
	"github.com/ardnew/subcmd/pkg"
)

const (
	runPrompt  = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
Lines typed at the run prompt are dispatched through the command tree,
exactly as if they followed the program name on a shell command line.

Control commands (Esc switches to the control prompt):
  help    show this message
  tree    list every command with the flags your roles allow
  clear   clear the screen
  quit    leave the session (also exit, Ctrl+D)

Keys:
  Tab, Shift+Tab      step through completion candidates
  Space               keep the highlighted candidate
  Esc                 undo the candidate, or switch prompts
  Up, Down            recall history from both prompts
  Shift+Up, Shift+Down recall history from the current prompt only
  Ctrl+C              clear the line, or leave when it is empty
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeRun inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	nameStyle       = lipgloss.NewStyle().Bold(true)
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the echo line of a submitted command line.
func formatCommand(input string) string {
	return promptStyle.Render(runPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the echo line of a control command.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// Session is the command tree a REPL operates on.
type Session[ID any] struct {
	// Root is the tree that submitted lines are dispatched through.
	Root command.Node[ID]

	// Identity selects the flags allowed at each node.
	Identity ID

	// Output receives the output of executed nodes. It is drained after
	// every dispatch and may be nil.
	Output *bytes.Buffer

	// History is the path of the history file, or "" to keep history in
	// memory only.
	History string
}

// model is the Bubble Tea model for the REPL.
type model[ID any] struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	root         command.Node[ID]
	id           ID
	output       *bytes.Buffer
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current candidates, in completion order
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	runText      string
	runCursor    int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session on s.
func Run[ID any](
	ctx context.Context,
	s Session[ID],
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if s.Root == nil {
		return ErrNoTree
	}

	ctx = log.NewContext(ctx, logger)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("root", s.Root.Name()),
		slog.String("history", s.History),
	)

	history := NewHistory(s.History)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", s.History),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, s, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel[ID any](
	ctx context.Context,
	s Session[ID],
	history *History,
	logger log.Logger,
) model[ID] {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(runPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	output := s.Output
	if output == nil {
		output = new(bytes.Buffer)
	}

	return model[ID]{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		root:       s.Root,
		id:         s.Identity,
		output:     output,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeRun,
	}
}

func (m model[ID]) Init() tea.Cmd {
	return textinput.Blink
}

func (m model[ID]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(runPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model[ID]) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		hint := "Type a command (Tab completes) or press Esc for REPL commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model[ID]) handleKey(msg tea.KeyMsg) (model[ID], tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the candidate being cycled.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, etc.) edits or moves
	// without auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selection by step through the candidates, replacing the
// current word with the selected one. A sole candidate is accepted at once.
func (m model[ID]) cycle(step int) model[ID] {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord[ID any](m *model[ID], replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(utf8.RuneCountInString(newInput[:newCursor]))

	m.wordEnd = newCursor
}

// refreshMatches recomputes the candidates for the current input state.
// When autoConfirm is true it also accepts the sole remaining candidate if
// the typed word already equals it. autoConfirm should be false for
// deletions and cursor movement.
func refreshMatches[ID any](m *model[ID], autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str

	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model[ID]) executeInput() (model[ID], tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.runText, m.runCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	return m, tea.Sequence(append(
		[]tea.Cmd{tea.Println(formatCommand(input))},
		m.dispatch(input)...,
	)...)
}

// dispatch runs input through the command tree and returns the lines to
// print: the node's output, then an error or a grouping notice.
func (m model[ID]) dispatch(input string) []tea.Cmd {
	ctx := m.ctxFunc()

	out, err := command.Dispatch(ctx, m.root, m.id, pkg.Fields(input))

	var cmds []tea.Cmd

	if text := strings.TrimRight(m.output.String(), "\n"); text != "" {
		cmds = append(cmds, tea.Println(resultStyle.Render(text)))
	}

	m.output.Reset()

	switch {
	case err != nil:
		m.logger.TraceContext(ctx, "repl dispatch failed", slog.Any("error", err))
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))

	case !out.Ran:
		cmds = append(cmds, tea.Println(errorStyle.Render(out.Notice())))
	}

	return cmds
}

func (m model[ID]) executeCommand(input string) (model[ID], tea.Cmd) {
	parts := strings.Fields(input)
	echo := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]),
	)

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "t", "tree":
		return m, tea.Sequence(echo, tea.Println(Tree(m.root, m.id)))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + parts[0] + " (try 'help')"),
		)
	}
}

// historyStep moves through history by dir (-1 older, 1 newer). With
// sameMode set, entries from the other mode are skipped; otherwise the
// mode follows the entry. Stepping past the newest entry clears the input.
func (m model[ID]) historyStep(dir int, sameMode bool) model[ID] {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(utf8.RuneCountInString(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to the specified mode, preserving each mode's
// input and cursor.
func (m model[ID]) switchToMode(mode inputMode) model[ID] {
	if m.mode == modeRun {
		m.runText, m.runCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeRun {
		m.input.Prompt = promptStyle.Render(runPrompt)
		m.input.SetValue(m.runText)
		m.input.SetCursor(m.runCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
