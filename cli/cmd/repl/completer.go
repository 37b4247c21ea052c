package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/pkg"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "tree", "clear", "quit"}

// wordBounds returns the whitespace-delimited word at the cursor position
// and its byte boundaries within input. The word is empty when the cursor
// sits on whitespace or at either end of a blank line.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = max(0, min(cursor, len(input)))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if unicode.IsSpace(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// typedAt splits input into the tokens before the word at the cursor plus
// the part of that word left of the cursor, which is the token being
// completed.
func typedAt(input string, cursor int) (typed []string, start, end int) {
	_, start, end = wordBounds(input, cursor)
	cursor = max(start, min(cursor, end))

	typed = append(pkg.Fields(input[:start]), input[start:cursor])

	return typed, start, end
}

// byteOffset converts a rune index into s, as the text input reports its
// cursor, to a byte offset.
func byteOffset(s string, runes int) int {
	for i := range s {
		if runes <= 0 {
			return i
		}

		runes--
	}

	return len(s)
}

// highlight pairs each candidate with the characters of pattern it
// matches, keeping the candidates in their given order.
func highlight(pattern string, candidates []string) fuzzy.Matches {
	matches := make(fuzzy.Matches, len(candidates))

	for i, c := range candidates {
		matches[i] = fuzzy.Match{Str: c, Index: i}

		if pattern == "" {
			continue
		}

		if found := fuzzy.Find(pattern, []string{c}); len(found) > 0 {
			matches[i].MatchedIndexes = found[0].MatchedIndexes
		}
	}

	return matches
}

// computeMatches returns the candidates for the word at the cursor and the
// word's boundaries. A blank line yields no matches so that the hint stays
// visible.
func (m model[ID]) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	typed, start, end := typedAt(input, byteOffset(input, m.input.Position()))
	prefix := typed[len(typed)-1]

	if len(typed) == 1 && prefix == "" {
		return nil, start, end
	}

	var candidates []string

	if m.mode == modeCtrl {
		if len(typed) > 1 {
			return nil, start, end
		}

		candidates = command.Narrow(ctrlCommands, prefix)
	} else {
		candidates = command.Complete(m.ctxFunc(), m.root, m.id, typed)
	}

	if len(candidates) == 0 {
		return nil, start, end
	}

	return highlight(prefix, candidates), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		reserve := ellipsisWidth
		if last {
			reserve = 0
		}

		if i > 0 && used+entryWidth+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, markStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, markStyle = selectedStyle, selectedMatchStyle
	}

	marked := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		marked[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if marked[i] {
			b.WriteString(markStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
