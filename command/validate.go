package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ardnew/subcmd/pkg"
)

// Validate checks every node reachable from root for the caller id and
// returns all problems found, joined. It reports empty names, sibling
// names or aliases that select more than one child, and malformed or
// duplicate flags.
func Validate[ID any](root Node[ID], id ID) error {
	return errors.Join(validate(root, id, []string{root.Name()})...)
}

func validate[ID any](node Node[ID], id ID, path []string) []error {
	var errs []error

	where := strings.Join(path, " ")

	if node.Name() == "" {
		errs = append(errs, pkg.ErrEmptyName.Wrapf("%s", where))
	}

	if err := node.AllowedFlags(id).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", where, err))
	}

	names := make(map[string]struct{})
	aliases := make(map[string]struct{})

	for _, child := range node.Children() {
		at := where + " " + child.Name()

		if _, dup := names[child.Name()]; dup {
			errs = append(errs, pkg.ErrDuplicateName.Wrapf("%s", at))
		} else if _, dup := aliases[child.Name()]; dup {
			errs = append(errs, pkg.ErrDuplicateName.Wrapf("%s", at))
		}

		names[child.Name()] = struct{}{}

		for _, alias := range child.Aliases() {
			if _, dup := aliases[alias]; dup {
				errs = append(errs, pkg.ErrDuplicateAlias.Wrapf("%s: %s", at, alias))
			} else if _, dup := names[alias]; dup {
				errs = append(errs, pkg.ErrDuplicateAlias.Wrapf("%s: %s", at, alias))
			}

			aliases[alias] = struct{}{}
		}

		errs = append(errs, validate(child, id, append(path[:len(path):len(path)], child.Name()))...)
	}

	return errs
}
