package command

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/subcmd/flag"
	"github.com/ardnew/subcmd/pkg"
)

// recorder captures the arguments of every executed node.
type recorder struct {
	calls []string
	args  []flag.Arguments
}

func (r *recorder) action(name string) func(context.Context, string, flag.Arguments) error {
	return func(_ context.Context, _ string, args flag.Arguments) error {
		r.calls = append(r.calls, name)
		r.args = append(r.args, args)

		return nil
	}
}

var (
	flagA  = flag.Simple("a")
	flagB  = flag.Simple("b")
	optO   = flag.Option("o", flag.WithValues("x", "y"))
	optOut = flag.Option("output", flag.WithValues("json", "yaml"))
)

// makeTree builds:
//
//	app            (group)
//	├── list (ls)  -a -b --output
//	│   └── deep   -a
//	├── start
//	└── stop
func makeTree(rec *recorder) *Func[string] {
	deep := &Func[string]{
		Label:  "deep",
		Flags:  flag.Set{flagA},
		Action: rec.action("deep"),
	}

	list := &Func[string]{
		Label:  "list",
		Alias:  []string{"ls"},
		Subs:   []Node[string]{deep},
		Flags:  flag.Set{flagA, flagB, optOut},
		Action: rec.action("list"),
		Hint: func(_ string, _ flag.Arguments, _ string) []string {
			return []string{"files", "dirs"}
		},
	}

	return &Func[string]{
		Label: "app",
		Subs: []Node[string]{
			list,
			&Func[string]{Label: "start", Action: rec.action("start")},
			&Func[string]{Label: "stop", Action: rec.action("stop")},
		},
	}
}

func TestDispatch_ListWithFlag(t *testing.T) {
	rec := &recorder{}

	out, err := Dispatch(context.Background(), Node[string](makeTree(rec)), "user", []string{"list", "-a"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if !out.Ran || out.Notice() != "" {
		t.Errorf("got Ran=%t Notice=%q, want ran", out.Ran, out.Notice())
	}

	if !slices.Equal(rec.calls, []string{"list"}) {
		t.Fatalf("got calls %q, want [list]", rec.calls)
	}

	if got := rec.args[0].String(); got != "[-a]" {
		t.Errorf("got args %s, want [-a]", got)
	}

	if got := strings.Join(out.Path, " "); got != "app list" {
		t.Errorf("got path %q, want %q", got, "app list")
	}
}

func TestDispatch_ConsumesOneTokenPerLevel(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
		depth  int
	}{
		{"root only", []string{"x", "y"}, "app", 0},
		{"one level", []string{"start", "x", "y"}, "start", 1},
		{"alias", []string{"ls", "x"}, "list", 1},
		{"two levels", []string{"list", "deep", "x", "y", "z"}, "deep", 2},
		{"unknown segment stops descent", []string{"list", "nope", "deep"}, "list", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}

			out, err := Dispatch(context.Background(), Node[string](makeTree(rec)), "", tt.tokens)
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			if got := out.Node.Name(); got != tt.want {
				t.Errorf("got node %q, want %q", got, tt.want)
			}

			if got, want := len(out.Args), len(tt.tokens)-tt.depth; got != want {
				t.Errorf("got %d arguments, want %d", got, want)
			}
		})
	}
}

func TestDispatch_GroupOnly(t *testing.T) {
	rec := &recorder{}

	out, err := Dispatch(context.Background(), Node[string](makeTree(rec)), "", nil)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if out.Ran {
		t.Error("group node reported ran")
	}

	if got, want := out.Notice(), "app: cannot run without a subcommand"; got != want {
		t.Errorf("got notice %q, want %q", got, want)
	}

	if len(rec.calls) != 0 {
		t.Errorf("got calls %q, want none", rec.calls)
	}
}

func TestDispatch_ReturnsExecuteError(t *testing.T) {
	boom := errors.New("boom")
	root := &Func[string]{
		Label: "app",
		Action: func(context.Context, string, flag.Arguments) error {
			return boom
		},
	}

	out, err := Dispatch(context.Background(), Node[string](root), "", []string{"x"})
	if !errors.Is(err, boom) {
		t.Errorf("got error %v, want %v", err, boom)
	}

	if !out.Ran {
		t.Error("node with action reported not ran")
	}
}

func TestDispatch_IdentitySelectsFlags(t *testing.T) {
	var got flag.Arguments

	root := &Func[string]{
		Label: "app",
		FlagsFor: func(id string) flag.Set {
			if id == "admin" {
				return flag.Set{flag.Simple("force")}
			}

			return nil
		},
		Action: func(_ context.Context, _ string, args flag.Arguments) error {
			got = args

			return nil
		},
	}

	for _, tt := range []struct {
		id   string
		want string
	}{
		{"admin", "[--force]"},
		{"guest", `["--force"]`},
	} {
		t.Run(tt.id, func(t *testing.T) {
			if _, err := Dispatch(context.Background(), Node[string](root), tt.id, []string{"--force"}); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := makeTree(&recorder{})

	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"list", "list", true},
		{"ls", "list", true},
		{"stop", "stop", true},
		{"deep", "", false},
		{"LIST", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := Find(Node[string](root), tt.token)
			if ok != tt.ok {
				t.Fatalf("Find(%q) ok = %t, want %t", tt.token, ok, tt.ok)
			}

			if ok && got.Name() != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.token, got.Name(), tt.want)
			}
		})
	}
}

func TestDefaultSuggestFlags(t *testing.T) {
	allowed := flag.Set{flagA, flagB, optOut}
	args := flag.Parse([]string{"-a", "--output", "json"}, allowed)

	got := flag.Set(DefaultSuggestFlags(allowed, args)).SurfaceForms()
	if !slices.Equal(got, []string{"-b"}) {
		t.Errorf("got %q, want [-b]", got)
	}
}

func TestFunc_Defaults(t *testing.T) {
	node := &Func[string]{Label: "group", Flags: flag.Set{flagA}}

	ran, err := node.Execute(context.Background(), "", nil)
	if ran || err != nil {
		t.Errorf("got (%t, %v), want (false, nil)", ran, err)
	}

	if got := node.TabComplete("", nil, ""); got != nil {
		t.Errorf("got hints %q, want nil", got)
	}

	if got := flag.Set(node.SuggestFlags("", nil)).SurfaceForms(); !slices.Equal(got, []string{"-a"}) {
		t.Errorf("got suggestions %q, want [-a]", got)
	}
}

func TestValidate(t *testing.T) {
	valid := makeTree(&recorder{})
	if err := Validate(Node[string](valid), ""); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name string
		root *Func[string]
		want []error
	}{
		{
			"duplicate name",
			&Func[string]{Label: "app", Subs: []Node[string]{
				&Func[string]{Label: "a"},
				&Func[string]{Label: "a"},
			}},
			[]error{pkg.ErrDuplicateName},
		},
		{
			"alias shadows name",
			&Func[string]{Label: "app", Subs: []Node[string]{
				&Func[string]{Label: "a"},
				&Func[string]{Label: "b", Alias: []string{"a"}},
			}},
			[]error{pkg.ErrDuplicateAlias},
		},
		{
			"name shadows alias",
			&Func[string]{Label: "app", Subs: []Node[string]{
				&Func[string]{Label: "b", Alias: []string{"a"}},
				&Func[string]{Label: "a"},
			}},
			[]error{pkg.ErrDuplicateName},
		},
		{
			"nested flag problems",
			&Func[string]{Label: "app", Subs: []Node[string]{
				&Func[string]{Label: "", Flags: flag.Set{flagA, flag.Option("a")}},
			}},
			[]error{pkg.ErrEmptyName, pkg.ErrDuplicateFlag},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Node[string](tt.root), "")

			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, want %v", err, want)
				}
			}
		})
	}
}
