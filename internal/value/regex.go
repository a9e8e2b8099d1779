package value

import (
	"regexp"
	"sort"
	"strings"
)

// Regex is a document- or operand-level regular expression literal.
// It is compiled once, at construction time, rather than per match
// call — the source's observed cost center was recompiling a $regex
// operand on every document, and a Regex is never rebuilt once a
// Value or a query.Node holds it.
type Regex struct {
	Pattern string
	Flags   string

	compiled *regexp.Regexp // nil if compilation failed; see MatchString
}

// honoredFlags is the subset of option letters this engine applies;
// anything else (e.g. "x", "g", "u") is silently dropped, matching
// the contract's deliberately narrowed $options support.
const honoredFlags = "ims"

// NewRegex compiles pattern/flags immediately. An invalid pattern or
// an unrecognized escape does not panic or return an error — it
// produces a Regex that never matches, consistent with this engine's
// rule that operator argument problems are runtime mismatches, not
// structural errors.
func NewRegex(pattern, flags string) Regex {
	r := Regex{Pattern: pattern, Flags: flags}
	if re, err := regexp.Compile(translateFlags(pattern, flags)); err == nil {
		r.compiled = re
	}
	return r
}

// translateFlags maps the honored Mongo option letters onto Go's RE2
// inline flag group, e.g. flags "im" becomes "(?im)pattern".
func translateFlags(pattern, flags string) string {
	seen := map[rune]bool{}
	var kept []rune
	for _, f := range flags {
		if strings.ContainsRune(honoredFlags, f) && !seen[f] {
			seen[f] = true
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return pattern
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i] < kept[j] })
	return "(?" + string(kept) + ")" + pattern
}

// MatchString reports whether s matches the compiled pattern. A Regex
// whose pattern failed to compile never matches.
func (r Regex) MatchString(s string) bool {
	if r.compiled == nil {
		return false
	}
	return r.compiled.MatchString(s)
}

// Valid reports whether the pattern compiled successfully.
func (r Regex) Valid() bool { return r.compiled != nil }
