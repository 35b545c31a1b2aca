package rs274

import "testing"

func mustParseCommand(t *testing.T, s string) Command {
	t.Helper()
	cmd, err := ParseCommand([]byte(s))
	if err != nil {
		t.Fatalf("ParseCommand(%q) error: %v", s, err)
	}
	return cmd
}

func TestParseGcodeDisambiguation(t *testing.T) {
	tests := []struct {
		in   string
		kind GcodeKind
	}{
		{"G0", G0},
		{"G1 X1", G1},
		{"G20", G20},
		{"G21", G21},
		{"G53", G53},
		{"G54", G54},
		{"G55", G55},
		{"G90", G90},
		{"G91", G91},
		{"G59.3", G59_3},
	}
	for _, test := range tests {
		cmd := mustParseCommand(t, test.in)
		if cmd.Kind != CmdG || cmd.G.Kind != test.kind {
			t.Errorf("ParseCommand(%q) = %+v, want G kind %v", test.in, cmd, test.kind)
		}
	}
}

func TestParseG0OptionalAxes(t *testing.T) {
	cmd := mustParseCommand(t, "G0")
	if cmd.G.Axes != nil {
		t.Errorf("G0 with no axes should have nil Axes, got %+v", cmd.G.Axes)
	}

	cmd = mustParseCommand(t, "G0 X[1+2] Y4")
	if cmd.G.Axes == nil {
		t.Fatal("G0 X[1+2] Y4 should have Axes")
	}
	if !cmd.G.Axes.Set[0] || !cmd.G.Axes.Set[1] {
		t.Fatalf("expected X and Y set, got %+v", cmd.G.Axes.Set)
	}
	v, ok := cmd.G.Axes.Expr[0].Eval(constContext{})
	if !ok || v != 3 {
		t.Errorf("X expr = (%v, %v), want (3, true)", v, ok)
	}
}

func TestParseAxesDuplicateFails(t *testing.T) {
	if _, err := ParseCommand([]byte("G1 X1 X2")); err == nil {
		t.Error("expected error for duplicate axis in one command")
	}
}

func TestParseComment(t *testing.T) {
	cmd := mustParseCommand(t, "(hello world)")
	if cmd.Kind != CmdComment || cmd.Comment != "hello world" {
		t.Errorf("got %+v, want comment \"hello world\"", cmd)
	}
}

func TestParseEmptyCommentFails(t *testing.T) {
	if _, err := ParseCommand([]byte("()")); err == nil {
		t.Error("expected error for empty comment")
	}
}

func TestParseAssignment(t *testing.T) {
	cmd := mustParseCommand(t, "#1 = 10")
	if cmd.Kind != CmdAssign || cmd.AssignTarget.Kind != ParamNumbered || cmd.AssignTarget.Numbered != 1 {
		t.Fatalf("got %+v", cmd)
	}
	v, ok := cmd.AssignValue.Eval(constContext{})
	if !ok || v != 10 {
		t.Errorf("assign value = (%v, %v), want (10, true)", v, ok)
	}
}

func TestParseMcode(t *testing.T) {
	cmd := mustParseCommand(t, "M3")
	if cmd.Kind != CmdM || cmd.M.Kind != M3 {
		t.Fatalf("got %+v, want M3", cmd)
	}

	cmd = mustParseCommand(t, "M6 T12")
	if cmd.Kind != CmdM || cmd.M.Kind != M6 || cmd.M.Tool == nil || *cmd.M.Tool != 12 {
		t.Fatalf("got %+v, want M6 T12", cmd)
	}

	cmd = mustParseCommand(t, "M6")
	if cmd.M.Tool != nil {
		t.Fatalf("bare M6 should have nil Tool, got %+v", cmd.M.Tool)
	}
}

func TestParseOcode(t *testing.T) {
	cmd := mustParseCommand(t, "o100 if [#2]")
	if cmd.Kind != CmdO || cmd.O.ID != 100 || cmd.O.Statement != OIf {
		t.Fatalf("got %+v", cmd)
	}
	if cmd.O.Expr == nil || cmd.O.Expr.Kind != ExprParam {
		t.Fatalf("O.Expr = %+v, want a param expression", cmd.O.Expr)
	}

	cmd = mustParseCommand(t, "O5 endsub")
	if cmd.O.Statement != OEndSub || cmd.O.ID != 5 {
		t.Fatalf("got %+v, want endsub 5", cmd)
	}
}

func TestParseScodeAndTcode(t *testing.T) {
	cmd := mustParseCommand(t, "S1000")
	if cmd.Kind != CmdS {
		t.Fatalf("got %+v, want S", cmd)
	}
	cmd = mustParseCommand(t, "T5")
	if cmd.Kind != CmdT {
		t.Fatalf("got %+v, want T", cmd)
	}
}

func TestParseCaseInsensitiveCodeLetter(t *testing.T) {
	a := mustParseCommand(t, "g21")
	b := mustParseCommand(t, "G21")
	if a.G.Kind != b.G.Kind {
		t.Errorf("case-insensitivity broken: %v vs %v", a.G.Kind, b.G.Kind)
	}
}

func TestParseG10Offsets(t *testing.T) {
	cmd := mustParseCommand(t, "G10 L2 P1 X1 Y2")
	if cmd.Kind != CmdG || cmd.G.Kind != G10L2 || cmd.G.CoordSys != 1 {
		t.Fatalf("got %+v", cmd)
	}
	if !cmd.G.Axes.Set[0] || !cmd.G.Axes.Set[1] {
		t.Fatalf("expected X and Y set, got %+v", cmd.G.Axes.Set)
	}
}

func TestParseUnrecognizedCodeFails(t *testing.T) {
	if _, err := ParseCommand([]byte("Q5")); err == nil {
		t.Error("expected error for unrecognized code letter")
	}
}
