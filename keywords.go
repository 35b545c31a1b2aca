package rs274

import (
	"github.com/beevik/prefixtree/v2"
)

// unaryFuncTree resolves a unary function keyword (ABS, ACOS, ...) to its
// UnaryFuncName, the same exact-match lookup beevik-go6502's debugger
// uses to resolve command names, built once at package init.
var unaryFuncTree = prefixtree.New()

// ocodeStatementTree resolves an O-word statement keyword (sub, endsub,
// if, endif) the same way.
var ocodeStatementTree = prefixtree.New()

// ocodeStatementNames mirrors unaryFuncNames for the four O-word
// statement keywords.
var ocodeStatementNames = []struct {
	name string
	st   OcodeStatement
}{
	{"ENDSUB", OEndSub},
	{"SUB", OSub},
	{"ENDIF", OEndIf},
	{"IF", OIf},
}

func init() {
	for _, entry := range unaryFuncNames {
		if entry.fn == -1 {
			continue
		}
		unaryFuncTree.Add(normalizeKeyword(entry.name), entry.fn)
	}
	for _, entry := range ocodeStatementNames {
		ocodeStatementTree.Add(normalizeKeyword(entry.name), entry.st)
	}
}

// lookupUnaryFunc resolves name to a UnaryFuncName via unaryFuncTree.
// prefixtree.Tree resolves an unambiguous abbreviation as well as an
// exact spelling, so parseUnaryCall additionally checks the returned
// value's own canonical spelling has the same length as name before
// accepting the match — the G-code grammar has no abbreviated function
// keywords, unlike the command-shell usage prefixtree was built for.
func lookupUnaryFunc(name string) (UnaryFuncName, bool) {
	v, err := unaryFuncTree.Find(normalizeKeyword(name))
	if err != nil {
		return 0, false
	}
	fn, ok := v.(UnaryFuncName)
	return fn, ok
}

func lookupOcodeStatement(name string) (OcodeStatement, bool) {
	v, err := ocodeStatementTree.Find(normalizeKeyword(name))
	if err != nil {
		return 0, false
	}
	s, ok := v.(OcodeStatement)
	return s, ok
}

// unaryFuncSpelling and ocodeStatementSpelling return the canonical
// keyword text for an already-resolved value, used to reject
// prefixtree's abbreviation matches (see lookupUnaryFunc).
func unaryFuncSpelling(fn UnaryFuncName) string {
	for _, entry := range unaryFuncNames {
		if entry.fn == fn {
			return entry.name
		}
	}
	return ""
}

func ocodeStatementSpelling(st OcodeStatement) string {
	for _, entry := range ocodeStatementNames {
		if entry.st == st {
			return entry.name
		}
	}
	return ""
}

// scanKeyword consumes the maximal run of letters at the start of b, for
// prefixtree-backed keyword resolution. It reports ok=false, leaving b
// untouched, if b doesn't start with a letter or if the letter run is
// immediately followed by a digit or underscore (so "SIN2" is rejected
// as a keyword boundary rather than treated as "SIN" followed by "2").
func scanKeyword(b []byte) (rest []byte, kw string, ok bool) {
	i := 0
	for i < len(b) && isAlpha(b[i]) {
		i++
	}
	if i == 0 || (i < len(b) && isIdentCont(b[i])) {
		return b, "", false
	}
	return b[i:], string(b[:i]), true
}

func normalizeKeyword(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		out[i] = lower(name[i])
	}
	return string(out)
}
