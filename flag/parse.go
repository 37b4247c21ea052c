package flag

import "strings"

// Parse classifies tokens against the allowed flags and returns one
// argument per literal or flag occurrence, preserving input order.
//
// An Option flag's value is always the next token, which is never
// classified itself. A cluster such as "-abc" expands only when every
// character names an allowed one-character flag; otherwise the token is a
// literal. Only a single-character cluster naming an Option flag consumes
// a value.
func Parse(tokens []string, allowed Set) Arguments {
	out := make(Arguments, 0, len(tokens))

	var (
		pending Spec
		waiting bool
	)

	for _, token := range tokens {
		if waiting {
			out = append(out, Bind(pending, token))
			waiting = false

			continue
		}

		switch {
		case strings.HasPrefix(token, longPrefix):
			spec, ok := allowed.Lookup(token)

			switch {
			case !ok:
				out = append(out, Literal(token))
			case spec.IsOption():
				pending, waiting = spec, true
			default:
				out = append(out, Occur(spec))
			}

		case strings.HasPrefix(token, shortPrefix):
			cluster, ok := expand(token, allowed)

			switch {
			case !ok:
				out = append(out, Literal(token))
			case len(cluster) == 1 && cluster[0].IsOption():
				pending, waiting = cluster[0], true
			default:
				for _, spec := range cluster {
					out = append(out, Occur(spec))
				}
			}

		default:
			out = append(out, Literal(token))
		}
	}

	if waiting {
		out = append(out, Occur(pending))
	}

	return out
}

// Cluster returns the flags named by a single-dash token, in order.
// It reports false unless token is a non-empty cluster whose every
// character names an allowed one-character flag.
func Cluster(token string, allowed Set) ([]Spec, bool) {
	if strings.HasPrefix(token, longPrefix) ||
		!strings.HasPrefix(token, shortPrefix) {
		return nil, false
	}

	return expand(token, allowed)
}

// expand resolves each character after the leading dash. A bare "-" has
// nothing to expand and is reported as unmatched.
func expand(token string, allowed Set) ([]Spec, bool) {
	chars := token[len(shortPrefix):]
	if chars == "" {
		return nil, false
	}

	cluster := make([]Spec, 0, len(chars))

	for _, r := range chars {
		spec, ok := allowed.LookupRune(r)
		if !ok {
			return nil, false
		}

		cluster = append(cluster, spec)
	}

	return cluster, true
}
