// Package naming provides the identifier transforms used by the stub
// emitter: CamelCase member names become lower_snake C symbol parts,
// and the caller-supplied prefix is composed into its three canonical
// forms exactly once per run.
package naming

import "strings"

// CamelToLower converts a CamelCase member name to lower_snake_case.
//
// A run of consecutive capitals stays joined, except that the last
// capital of a run followed by a lowercase letter starts a new word:
//
//	DoThing   -> do_thing
//	SSLError  -> ssl_error
//	NewChannel -> new_channel
//
// The transform is total: every input maps to exactly one output.
func CamelToLower(s string) string {
	if s == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(s) + len(s)/2)

	runes := []rune(s)
	out.WriteRune(lower(runes[0]))
	lastUpper := isUpper(runes[0])

	for i := 1; i < len(runes); i++ {
		r := runes[i]
		switch {
		case !isUpper(r):
			out.WriteRune(r)
			lastUpper = false
		case lastUpper && !(i+1 < len(runes) && isLower(runes[i+1])):
			// Inside a capital run; stay joined.
			out.WriteRune(lower(r))
			lastUpper = true
		default:
			out.WriteRune('_')
			out.WriteRune(lower(r))
			lastUpper = true
		}
	}

	return out.String()
}

// CamelToUpper converts a CamelCase member name to UPPER_SNAKE_CASE,
// the form used for generated constants.
func CamelToUpper(s string) string {
	return strings.ToUpper(CamelToLower(s))
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

func lower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}

// Prefix holds the three canonical forms of the caller-supplied
// identifier prefix. All emitted symbols must draw on one Prefix
// value so the forms never drift within a run.
type Prefix struct {
	// Lower is the form used for C function symbols ("tp_cli").
	Lower string
	// Upper is the form used for constants and quarks ("TP_CLI").
	Upper string
	// Mixed is the underscore-free form used when the prefix is
	// concatenated into mixed-case identifiers ("tpcli").
	Mixed string
}

// NewPrefix composes the three canonical forms from the raw prefix.
func NewPrefix(raw string) Prefix {
	return Prefix{
		Lower: strings.ToLower(raw),
		Upper: strings.ToUpper(raw),
		Mixed: strings.ReplaceAll(raw, "_", ""),
	}
}
