package rs274

import "testing"

func TestPrecedenceLevelsSortedDescendingLength(t *testing.T) {
	for _, level := range precedenceLevels {
		for i := 1; i < len(level); i++ {
			if len(level[i-1].Name) < len(level[i].Name) {
				t.Errorf("level %v not sorted by descending spelling length", level)
			}
		}
	}
}

func TestMatchOpGuardsAlphabeticOperators(t *testing.T) {
	// "MODa" must not match MOD.
	if _, _, ok := matchOp([]byte("MODa"), precedenceLevels[1]); ok {
		t.Error("matchOp matched MOD inside MODa")
	}
	rest, op, ok := matchOp([]byte("MOD 3"), precedenceLevels[1])
	if !ok || op.Name != "MOD" || string(rest) != " 3" {
		t.Errorf("matchOp(\"MOD 3\") = (%q, %v, %v), want (\" 3\", MOD, true)", rest, op, ok)
	}
}

func TestMatchOpCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"and", "AND", "And", "aNd"} {
		_, op, ok := matchOp([]byte(spelling+" x"), precedenceLevels[4])
		if !ok || op.Name != "AND" {
			t.Errorf("matchOp(%q) = (_, %v, %v), want AND", spelling, op, ok)
		}
	}
}

func TestApplyBinOp(t *testing.T) {
	tests := []struct {
		op   BinOp
		a, b float32
		want float32
	}{
		{OpPow, 2, 3, 8},
		{OpPow, -2, 2, 4},
		{OpPow, 2, -1, 0.5},
		{OpMul, 2, 3, 6},
		{OpDiv, 6, 3, 2},
		{OpMod, 5, 3, 2},
		{OpAdd, 1, 2, 3},
		{OpSub, 1, 2, -1},
		{OpEq, 1, 1, 1},
		{OpNe, 1, 2, 1},
		{OpGt, 2, 1, 1},
		{OpGe, 1, 1, 1},
		{OpLt, 1, 2, 1},
		{OpLe, 1, 1, 1},
		{OpAnd, 1, 1, 1},
		{OpAnd, 0, 1, 0},
		{OpOr, 0, 1, 1},
		{OpXor, 1, 1, 0},
		{OpXor, 1, 0, 1},
	}
	for _, test := range tests {
		got := applyBinOp(test.op, test.a, test.b)
		if got != test.want {
			t.Errorf("applyBinOp(%s, %v, %v) = %v, want %v", test.op.Name, test.a, test.b, got, test.want)
		}
	}
}
