package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/subcmd/command"
)

// Tree renders the command tree rooted at root. Each node shows its
// aliases and the flags it allows for id.
func Tree[ID any](root command.Node[ID], id ID) string {
	return treeOf(root, id).String()
}

func treeOf[ID any](node command.Node[ID], id ID) *tree.Tree {
	t := tree.Root(treeLabel(node, id)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(hintStyle)

	for _, child := range node.Children() {
		t.Child(treeOf(child, id))
	}

	return t
}

func treeLabel[ID any](node command.Node[ID], id ID) string {
	var b strings.Builder

	b.WriteString(nameStyle.Render(node.Name()))

	if aliases := node.Aliases(); len(aliases) > 0 {
		b.WriteString(hintStyle.Render(" (" + strings.Join(aliases, ", ") + ")"))
	}

	if flags := node.AllowedFlags(id); len(flags) > 0 {
		b.WriteString(" ")
		b.WriteString(suggestionStyle.Render(strings.Join(flags.SurfaceForms(), " ")))
	}

	return b.String()
}
