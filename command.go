package rs274

// NumAxes is the compile-time axis count. The spec requires at least
// three of X/Y/Z/A/B/C; this module carries all six.
const NumAxes = 6

var axisLetters = [NumAxes]byte{'X', 'Y', 'Z', 'A', 'B', 'C'}

func axisIndex(letter byte) (int, bool) {
	u := upper(letter)
	for i, l := range axisLetters {
		if l == u {
			return i, true
		}
	}
	return 0, false
}

// Axes is a fixed-size mapping from axis letter to an optional
// expression. A nil entry means that axis was not mentioned.
type Axes struct {
	Set  [NumAxes]bool
	Expr [NumAxes]*Expression
}

func (a *Axes) setAxis(index int, e Expression, at []byte) error {
	if a.Set[index] {
		return parseError(at, KindAxes, "axis set twice in one command")
	}
	a.Set[index] = true
	a.Expr[index] = &e
	return nil
}

// GcodeKind enumerates the G-codes this interpreter recognizes, plus the
// supplemented G10/G28/G30/G92 families from SPEC_FULL §4.
type GcodeKind int

const (
	G0 GcodeKind = iota
	G1
	G20
	G21
	G53
	G54
	G55
	G56
	G57
	G58
	G59
	G59_1
	G59_2
	G59_3
	G90
	G91
	G10L2
	G10L20
	G28
	G28_1
	G30
	G30_1
	G92
	G92_1
	G92_2
	G92_3
)

// Gcode is a parsed G-word. Axes is valid for G0 (optional), G1
// (required), G92 (required), and G10L2/G10L20 (required, interpreted as
// offsets rather than a move). CoordSys and P select the target
// coordinate system for the G10 forms (1-based, matching #5220).
type Gcode struct {
	Kind     GcodeKind
	Axes     *Axes
	CoordSys int // valid for G10L2/G10L20: target coordinate system number
}

// McodeKind enumerates the M-codes this interpreter recognizes.
type McodeKind int

const (
	M3 McodeKind = iota
	M4
	M5
	M6
	M7
	M8
	M9
)

// Mcode is a parsed M-word. Tool is valid (and optional) for M6.
type Mcode struct {
	Kind McodeKind
	Tool *uint64
}

// OcodeStatement enumerates the four O-word statement forms.
type OcodeStatement int

const (
	OSub OcodeStatement = iota
	OEndSub
	OIf
	OEndIf
)

// Ocode is a parsed O-word. Expr is valid only for OIf.
type Ocode struct {
	ID        uint64
	Statement OcodeStatement
	Expr      *Expression
}

// Scode is a spindle-speed word: S<expr>.
type Scode struct {
	Expr Expression
}

// Tcode is a tool-select word: T<expr>.
type Tcode struct {
	Expr Expression
}

// CommandKind discriminates the seven Command forms.
type CommandKind int

const (
	CmdComment CommandKind = iota
	CmdAssign
	CmdG
	CmdM
	CmdO
	CmdS
	CmdT
)

// Command is the top-level parsed unit: one line of input.
type Command struct {
	Kind CommandKind

	Comment string // valid when Kind == CmdComment

	AssignTarget Param      // valid when Kind == CmdAssign
	AssignValue  Expression // valid when Kind == CmdAssign

	G Gcode // valid when Kind == CmdG
	M Mcode // valid when Kind == CmdM
	O Ocode // valid when Kind == CmdO
	S Scode // valid when Kind == CmdS
	T Tcode // valid when Kind == CmdT
}

// ParseCommand parses a single line of input (newline already stripped)
// into a Command. On failure the returned error is a *ParseError with
// Offset/Fragment filled in relative to line.
func ParseCommand(line []byte) (Command, error) {
	cmd, err := parseCommand(line)
	if pe, ok := err.(*ParseError); ok {
		pe.finalize(line)
	}
	return cmd, err
}

func parseCommand(b []byte) (Command, error) {
	b = skipSpace(b)
	if len(b) == 0 {
		return Command{}, parseError(b, KindCode, "empty line")
	}
	if b[0] == '(' {
		return parseComment(b)
	}
	if b[0] == '#' {
		return parseAssignment(b)
	}
	switch upper(b[0]) {
	case 'G':
		return parseGcode(skipSpace(b[1:]))
	case 'M':
		return parseMcode(skipSpace(b[1:]))
	case 'O':
		return parseOcode(skipSpace(b[1:]))
	case 'S':
		return parseScode(skipSpace(b[1:]))
	case 'T':
		return parseTcode(skipSpace(b[1:]))
	default:
		return Command{}, parseError(b, KindCode, "unrecognized code letter")
	}
}

// parseComment matches "(" {any byte except ")"} ")"; the body must be
// non-empty, so "()" fails.
func parseComment(b []byte) (Command, error) {
	if len(b) == 0 || b[0] != '(' {
		return Command{}, parseError(b, KindComment, "expected '('")
	}
	i := 1
	for i < len(b) && b[i] != ')' {
		i++
	}
	if i >= len(b) {
		return Command{}, parseError(b, KindComment, "unterminated comment")
	}
	if i == 1 {
		return Command{}, parseError(b, KindComment, "empty comment")
	}
	return Command{Kind: CmdComment, Comment: string(b[1:i])}, nil
}

func parseAssignment(b []byte) (Command, error) {
	rest, target, err := parseParamRef(b)
	if err != nil {
		return Command{}, err
	}
	rest = skipSpace(rest)
	if len(rest) == 0 || rest[0] != '=' {
		return Command{}, parseError(rest, KindParam, "expected '=' in assignment")
	}
	rest = skipSpace(rest[1:])
	_, value, err := parseExpression(rest)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdAssign, AssignTarget: target, AssignValue: value}, nil
}

// gcodeTable pairs a numeric-code spelling with the kind it selects.
// Longer spellings (e.g. "59.3") are tried before shorter ones that would
// otherwise match a prefix, following the same longest-match discipline
// as operator spellings.
var gcodeTable = []struct {
	code string
	kind GcodeKind
}{
	{"59.3", G59_3},
	{"59.2", G59_2},
	{"59.1", G59_1},
	{"30.1", G30_1},
	{"28.1", G28_1},
	{"92.3", G92_3},
	{"92.2", G92_2},
	{"92.1", G92_1},
	{"0", G0},
	{"1", G1},
	{"10", G10L2}, // disambiguated further below via the L word
	{"20", G20},
	{"21", G21},
	{"28", G28},
	{"30", G30},
	{"53", G53},
	{"54", G54},
	{"55", G55},
	{"56", G56},
	{"57", G57},
	{"58", G58},
	{"59", G59},
	{"90", G90},
	{"91", G91},
	{"92", G92},
}

func parseGcode(b []byte) (Command, error) {
	for _, entry := range gcodeTable {
		rest, ok := numberCode(b, entry.code)
		if !ok {
			continue
		}
		rest = skipSpace(rest)
		return buildGcode(entry.kind, rest)
	}
	return Command{}, parseError(b, KindCode, "unrecognized G code")
}

func buildGcode(kind GcodeKind, rest []byte) (Command, error) {
	switch kind {
	case G0:
		if !axisLetterAt(rest) {
			return Command{Kind: CmdG, G: Gcode{Kind: G0}}, nil
		}
		axes, _, err := parseAxes(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdG, G: Gcode{Kind: G0, Axes: &axes}}, nil
	case G1:
		axes, _, err := parseAxes(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdG, G: Gcode{Kind: G1, Axes: &axes}}, nil
	case G92:
		axes, _, err := parseAxes(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdG, G: Gcode{Kind: G92, Axes: &axes}}, nil
	case G10L2:
		return parseG10(rest)
	default:
		return Command{Kind: CmdG, G: Gcode{Kind: kind}}, nil
	}
}

func axisLetterAt(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	_, ok := axisIndex(b[0])
	return ok
}

// parseG10 handles the two supplemented offset-programming forms, "G10
// L2 P<n> <axes>" and "G10 L20 P<n> <axes>", both written after the "10"
// numeric code has already been consumed.
func parseG10(b []byte) (Command, error) {
	rest, ok := matchKeyword(b, "L20")
	kind := G10L20
	if !ok {
		rest, ok = matchKeyword(b, "L2")
		kind = G10L2
	}
	if !ok {
		return Command{}, parseError(b, KindCode, "expected L2 or L20 after G10")
	}
	rest = skipSpace(rest)
	if len(rest) == 0 || upper(rest[0]) != 'P' {
		return Command{}, parseError(rest, KindCode, "expected P<n> after G10 L2/L20")
	}
	rest, n, err := parseUnsignedInt(skipSpace(rest[1:]))
	if err != nil {
		return Command{}, err
	}
	rest = skipSpace(rest)
	axes, _, err := parseAxes(rest)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdG, G: Gcode{Kind: kind, Axes: &axes, CoordSys: int(n)}}, nil
}

// parseAxes matches one or more axis words, each an axis letter followed
// by an expression. No two words may name the same axis.
func parseAxes(b []byte) (Axes, []byte, error) {
	var axes Axes
	matched := false
	for {
		b = skipSpace(b)
		if len(b) == 0 {
			break
		}
		idx, ok := axisIndex(b[0])
		if !ok {
			break
		}
		next, e, err := parseExpression(skipSpace(b[1:]))
		if err != nil {
			return Axes{}, b, err
		}
		if err := axes.setAxis(idx, e, b); err != nil {
			return Axes{}, b, err
		}
		matched = true
		b = next
	}
	if !matched {
		return Axes{}, b, parseError(b, KindAxes, "expected at least one axis word")
	}
	return axes, b, nil
}

var mcodeTable = []struct {
	code string
	kind McodeKind
}{
	{"3", M3},
	{"4", M4},
	{"5", M5},
	{"6", M6},
	{"7", M7},
	{"8", M8},
	{"9", M9},
}

func parseMcode(b []byte) (Command, error) {
	for _, entry := range mcodeTable {
		rest, ok := numberCode(b, entry.code)
		if !ok {
			continue
		}
		rest = skipSpace(rest)
		if entry.kind != M6 {
			return Command{Kind: CmdM, M: Mcode{Kind: entry.kind}}, nil
		}
		if len(rest) > 0 && upper(rest[0]) == 'T' {
			_, n, err := parseUnsignedInt(skipSpace(rest[1:]))
			if err != nil {
				return Command{}, err
			}
			return Command{Kind: CmdM, M: Mcode{Kind: M6, Tool: &n}}, nil
		}
		return Command{Kind: CmdM, M: Mcode{Kind: M6}}, nil
	}
	return Command{}, parseError(b, KindCode, "unrecognized M code")
}

func parseOcode(b []byte) (Command, error) {
	rest, id, err := parseUnsignedInt(b)
	if err != nil {
		return Command{}, err
	}
	rest = skipSpace(rest)
	r, kw, ok := scanKeyword(rest)
	if !ok {
		return Command{}, parseError(rest, KindOcode, "expected sub, endsub, if, or endif")
	}
	stmt, ok := lookupOcodeStatement(kw)
	if !ok || len(kw) != len(ocodeStatementSpelling(stmt)) {
		return Command{}, parseError(rest, KindOcode, "expected sub, endsub, if, or endif")
	}
	if stmt == OIf {
		_, cond, err := bracket(skipSpace(r), parseExpression)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdO, O: Ocode{ID: id, Statement: OIf, Expr: &cond}}, nil
	}
	return Command{Kind: CmdO, O: Ocode{ID: id, Statement: stmt}}, nil
}

func parseScode(b []byte) (Command, error) {
	_, e, err := parseExpression(b)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdS, S: Scode{Expr: e}}, nil
}

func parseTcode(b []byte) (Command, error) {
	_, e, err := parseExpression(b)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdT, T: Tcode{Expr: e}}, nil
}
