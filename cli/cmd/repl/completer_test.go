package repl

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/flag"
	"github.com/ardnew/subcmd/log"
)

// makeSession builds a tree whose nodes print their parsed arguments:
//
//	app
//	├── list (ls)  -a -l --sort
//	├── start
//	└── stop
func makeSession(t *testing.T) Session[string] {
	t.Helper()

	out := new(bytes.Buffer)

	echo := func(name string) func(context.Context, string, flag.Arguments) error {
		return func(_ context.Context, _ string, args flag.Arguments) error {
			fmt.Fprintln(out, name, args)

			return nil
		}
	}

	return Session[string]{
		Root: &command.Func[string]{
			Label: "app",
			Subs: []command.Node[string]{
				&command.Func[string]{
					Label: "list",
					Alias: []string{"ls"},
					Flags: flag.Set{
						flag.Simple("a", flag.WithNextRunes("l")),
						flag.Simple("l"),
						flag.Option("sort", flag.WithValues("name", "size")),
					},
					Action: echo("list"),
				},
				&command.Func[string]{Label: "start", Action: echo("start")},
				&command.Func[string]{Label: "stop", Action: echo("stop")},
			},
		},
		Identity: "tester",
		Output:   out,
		History:  filepath.Join(t.TempDir(), baseHistory),
	}
}

func newTestModel(t *testing.T) (model[string], Session[string]) {
	t.Helper()

	s := makeSession(t)
	h := NewHistory(s.History)

	return newModel(context.Background(), s, h, log.Default()), s
}

// typeLine sets the input and recomputes candidates as if typed.
func typeLine(m model[string], line string) model[string] {
	m.input.SetValue(line)
	m.input.CursorEnd()
	refreshMatches(&m, false)

	return m
}

func matchStrings(m model[string]) []string {
	out := make([]string, len(m.matches))
	for i, match := range m.matches {
		out[i] = match.Str
	}

	return out
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"second word", "list -a", 7, "-a", 5, 7},
		{"mid word", "foobar", 3, "foobar", 0, 6},
		{"at start", "foo", 0, "foo", 0, 3},
		{"after space", "list ", 5, "", 5, 5},
		{"punctuation is part of word", "--sort=name", 11, "--sort=name", 0, 11},
		{"dots are part of word", "a.b.c", 5, "a.b.c", 0, 5},
		{"tab separates", "x\tyz", 4, "yz", 2, 4},
		{"cursor past end", "ab", 9, "ab", 0, 2},
		{"empty", "", 0, "", 0, 0},
		{"multibyte", "é ñu", 5, "ñu", 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTypedAt(t *testing.T) {
	tests := []struct {
		input  string
		cursor int
		want   []string
	}{
		{"", 0, []string{""}},
		{"li", 2, []string{"li"}},
		{"list ", 5, []string{"list", ""}},
		{"list  -a", 8, []string{"list", "-a"}},
		{"list --sort", 11, []string{"list", "--sort"}},
		{"list --sort ", 12, []string{"list", "--sort", ""}},
		{"list -al", 7, []string{"list", "-a"}},
		{"é l", 4, []string{"é", "l"}},
		{"café --sort s", 14, []string{"café", "--sort", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, _, _ := typedAt(tt.input, tt.cursor)
			if !slices.Equal(got, tt.want) {
				t.Errorf("typedAt(%q, %d) = %q, want %q", tt.input, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		s     string
		runes int
		want  int
	}{
		{"", 0, 0},
		{"abc", 2, 2},
		{"é l", 0, 0},
		{"é l", 1, 2},
		{"é l", 3, 4},
		{"é l", 9, 4},
		{"ñu", -1, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.s, tt.runes), func(t *testing.T) {
			if got := byteOffset(tt.s, tt.runes); got != tt.want {
				t.Errorf("byteOffset(%q, %d) = %d, want %d", tt.s, tt.runes, got, tt.want)
			}
		})
	}
}

func TestHighlight_KeepsOrder(t *testing.T) {
	candidates := []string{"stop", "start", "status"}

	matches := highlight("st", candidates)
	if len(matches) != len(candidates) {
		t.Fatalf("got %d matches, want %d", len(matches), len(candidates))
	}

	for i, match := range matches {
		if match.Str != candidates[i] || match.Index != i {
			t.Errorf("match %d = (%q, %d), want (%q, %d)", i, match.Str, match.Index, candidates[i], i)
		}

		if len(match.MatchedIndexes) != 2 {
			t.Errorf("match %q highlights %v, want 2 characters", match.Str, match.MatchedIndexes)
		}
	}

	for _, match := range highlight("", candidates) {
		if len(match.MatchedIndexes) != 0 {
			t.Errorf("empty pattern highlighted %v in %q", match.MatchedIndexes, match.Str)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := highlight("", []string{"alpha", "beta", "gamma", "delta"})

	if got := renderCandidateBar(nil, -1, false, 80); got != "" {
		t.Errorf("no matches rendered %q", got)
	}

	full := renderCandidateBar(matches, -1, false, 80)
	for _, want := range []string{"alpha", "beta", "gamma", "delta"} {
		if !strings.Contains(full, want) {
			t.Errorf("bar %q missing %q", full, want)
		}
	}

	narrow := renderCandidateBar(matches, -1, false, 16)
	if !strings.Contains(narrow, "...") || strings.Contains(narrow, "delta") {
		t.Errorf("narrow bar = %q, want ellipsized", narrow)
	}

	if w := lipgloss.Width(narrow); w > 16 {
		t.Errorf("narrow bar is %d cells wide, want at most 16", w)
	}
}

func TestModel_Candidates(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"s", []string{"start", "stop"}},
		{"l", []string{"list", "ls"}},
		{"list ", []string{"-a", "-l", "--sort"}},
		{"list --sort ", []string{"name", "size"}},
		{"list --sort s", []string{"size"}},
		{"list -a", []string{"-a", "-al"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m, _ := newTestModel(t)
			m = typeLine(m, tt.line)

			if got := matchStrings(m); !slices.Equal(got, tt.want) {
				t.Errorf("candidates for %q = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestModel_CtrlCandidates(t *testing.T) {
	m, _ := newTestModel(t)
	m = m.switchToMode(modeCtrl)
	m = typeLine(m, "t")

	if got := matchStrings(m); !slices.Equal(got, []string{"tree"}) {
		t.Errorf("control candidates = %q, want [tree]", got)
	}
}

func TestModel_TabCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeLine(m, "s")

	m = m.cycle(1)
	if got := m.input.Value(); got != "start" {
		t.Fatalf("first tab = %q, want %q", got, "start")
	}

	m = m.cycle(1)
	if got := m.input.Value(); got != "stop" {
		t.Fatalf("second tab = %q, want %q", got, "stop")
	}

	m = m.cycle(1)
	if got := m.input.Value(); got != "start" {
		t.Errorf("third tab = %q, want %q", got, "start")
	}

	m = m.cycle(-1)
	if got := m.input.Value(); got != "stop" {
		t.Errorf("shift-tab = %q, want %q", got, "stop")
	}
}

func TestModel_TabAcceptsSoleCandidate(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeLine(m, "list --sort si")

	m = m.cycle(1)
	if got := m.input.Value(); got != "list --sort size" {
		t.Errorf("input = %q, want %q", got, "list --sort size")
	}

	if m.tabActive || len(m.matches) != 0 {
		t.Errorf("sole candidate left cycling active")
	}
}

func TestModel_MultibyteInput(t *testing.T) {
	s := makeSession(t)
	s.Root = &command.Func[string]{
		Label: "app",
		Subs: []command.Node[string]{
			&command.Func[string]{
				Label: "café",
				Flags: flag.Set{flag.Option("sort", flag.WithValues("name", "size"))},
			},
		},
	}
	m := newModel(context.Background(), s, NewHistory(s.History), log.Default())

	m = typeLine(m, "café --sort s")
	if got := matchStrings(m); !slices.Equal(got, []string{"size"}) {
		t.Fatalf("candidates = %q, want [size]", got)
	}

	m = m.cycle(1)
	if got := m.input.Value(); got != "café --sort size" {
		t.Errorf("input = %q, want %q", got, "café --sort size")
	}

	if got, want := m.input.Position(), len([]rune("café --sort size")); got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestModel_ExecuteDispatches(t *testing.T) {
	m, s := newTestModel(t)
	m = typeLine(m, "ls -al --sort size extra")

	m, cmd := m.executeInput()
	if cmd == nil {
		t.Fatal("executeInput returned no command")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if s.Output.Len() != 0 {
		t.Errorf("output not drained: %q", s.Output.String())
	}

	entries := m.history.Entries()
	if len(entries) != 1 || entries[0].Line != "ls -al --sort size extra" || entries[0].Mode != modeRun {
		t.Errorf("history = %v, want the submitted line", entries)
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	for _, e := range []HistoryEntry{
		{"list -a", modeRun},
		{"tree", modeCtrl},
		{"start", modeRun},
	} {
		if err := m.history.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m = m.historyStep(-1, false)
	if m.input.Value() != "start" || m.mode != modeRun {
		t.Fatalf("up = (%q, %d), want (start, run)", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1, false)
	if m.input.Value() != "tree" || m.mode != modeCtrl {
		t.Fatalf("up = (%q, %d), want (tree, ctrl)", m.input.Value(), m.mode)
	}

	m = m.switchToMode(modeRun)
	m = m.historyStep(-1, true)
	if m.input.Value() != "list -a" || m.mode != modeRun {
		t.Fatalf("shift-up = (%q, %d), want (list -a, run)", m.input.Value(), m.mode)
	}

	m = m.historyStep(1, true)
	m = m.historyStep(1, true)
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("stepping past newest left (%q, %d)", m.input.Value(), m.historyIdx)
	}
}

func TestTree(t *testing.T) {
	s := makeSession(t)

	got := Tree(s.Root, s.Identity)

	for _, want := range []string{"app", "list (ls) -a -l --sort", "start", "stop"} {
		if !strings.Contains(got, want) {
			t.Errorf("tree missing %q:\n%s", want, got)
		}
	}
}
