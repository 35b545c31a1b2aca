package rs274

import "testing"

type recordingSink struct {
	moves []map[byte]float32
}

func (r *recordingSink) Move(axes map[byte]float32, rapid bool, feedrate float32) {
	r.moves = append(r.moves, axes)
}
func (r *recordingSink) SpindleCommand(on bool, clockwise bool) {}
func (r *recordingSink) ToolChange(tool uint64)                 {}
func (r *recordingSink) CoolantCommand(c Coolant)                {}
func (r *recordingSink) SpeedCommand(rpm float32)               {}
func (r *recordingSink) ToolSelect(tool float32)                {}

func interpretLine(t *testing.T, in *Interpreter, s string) InterpretValue {
	t.Helper()
	cmd, err := ParseCommand([]byte(s))
	if err != nil {
		t.Fatalf("ParseCommand(%q) error: %v", s, err)
	}
	v, err := in.Interpret(cmd)
	if err != nil {
		t.Fatalf("Interpret(%q) error: %v", s, err)
	}
	return v
}

func TestInterpretUnitSwitch(t *testing.T) {
	in := NewInterpreter(nil)
	interpretLine(t, in, "G21")
	if unit, _, _, _ := in.Modal(); unit != UnitMm {
		t.Fatalf("after G21, unit = %v, want Mm", unit)
	}
	interpretLine(t, in, "G20")
	if unit, _, _, _ := in.Modal(); unit != UnitInch {
		t.Fatalf("after G20, unit = %v, want Inch", unit)
	}
}

func TestInterpretAssignAndNumberedRead(t *testing.T) {
	in := NewInterpreter(nil)
	v := interpretLine(t, in, "#1 = 10")
	if !v.IsEvalExpr || v.Value != 10 {
		t.Fatalf("interpret #1 = 10 -> %+v", v)
	}
	got, ok := in.store.getNumbered(1)
	if !ok || got != 10 {
		t.Fatalf("getNumbered(1) = (%v, %v), want (10, true)", got, ok)
	}

	interpretLine(t, in, "#2 = #1")
	got, ok = in.store.getNumbered(2)
	if !ok || got != 10 {
		t.Fatalf("getNumbered(2) = (%v, %v), want (10, true)", got, ok)
	}
}

func TestInterpretIndirectAssign(t *testing.T) {
	in := NewInterpreter(nil)
	interpretLine(t, in, "#1 = 20")
	interpretLine(t, in, "##1 = 5")
	got, ok := in.store.getNumbered(20)
	if !ok || got != 5 {
		t.Fatalf("getNumbered(20) = (%v, %v), want (5, true)", got, ok)
	}
}

func TestInterpretAssignUnboundReadSubstitutesZero(t *testing.T) {
	in := NewInterpreter(nil)
	v := interpretLine(t, in, "#1 = #2 + 1")
	if !v.IsEvalExpr || v.Value != 1 {
		t.Fatalf("interpret #1 = #2 + 1 -> %+v, want 1 (unbound #2 reads as 0)", v)
	}
}

func TestInterpretMoveForwardsToSink(t *testing.T) {
	sink := &recordingSink{}
	in := NewInterpreter(sink)
	interpretLine(t, in, "G0 X[1+2] Y4")
	if len(sink.moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(sink.moves))
	}
	move := sink.moves[0]
	if move['X'] != 3 || move['Y'] != 4 {
		t.Fatalf("move = %+v, want X:3 Y:4", move)
	}
}

func TestInterpretG92SetsWorkOffset(t *testing.T) {
	in := NewInterpreter(nil)
	interpretLine(t, in, "G1 X10")
	interpretLine(t, in, "G92 X0")
	if off := in.modal.workOffset[0]; off != -10 {
		t.Fatalf("workOffset[X] = %v, want -10", off)
	}
}

func TestInterpretPredefinedCoordSysNumber(t *testing.T) {
	in := NewInterpreter(nil)
	interpretLine(t, in, "G54")
	v, ok := in.GetParam(numberedParam(5220))
	if !ok || v != 1 {
		t.Fatalf("#5220 = (%v, %v), want (1, true) after G54", v, ok)
	}
}
