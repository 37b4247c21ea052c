package command_test

import (
	"context"
	"fmt"

	"github.com/ardnew/subcmd/command"
	"github.com/ardnew/subcmd/flag"
)

func Example() {
	list := &command.Func[string]{
		Label: "list",
		Flags: flag.Set{
			flag.Simple("a"),
			flag.Option("sort", flag.WithValues("name", "size", "time")),
		},
		Action: func(_ context.Context, user string, args flag.Arguments) error {
			fmt.Println(user, "listing", args)

			return nil
		},
	}

	root := command.Node[string](&command.Func[string]{
		Label: "app",
		Subs:  []command.Node[string]{list},
	})

	ctx := context.Background()

	out, _ := command.Dispatch(ctx, root, "alice", []string{"list", "-a", "--sort", "size"})
	fmt.Println(out.Ran)

	out, _ = command.Dispatch(ctx, root, "alice", nil)
	fmt.Println(out.Notice())

	fmt.Println(command.Complete(ctx, root, "alice", []string{"list", "--sort", "s"}))
	fmt.Println(command.Complete(ctx, root, "alice", []string{"list", "-a", ""}))

	// Output:
	// alice listing [-a --sort="size"]
	// true
	// app: cannot run without a subcommand
	// [size]
	// [--sort]
}
