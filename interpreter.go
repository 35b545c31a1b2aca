package rs274

// InterpretValue is what a successfully interpreted Command produces.
type InterpretValue struct {
	IsEvalExpr bool
	Value      float32 // valid when IsEvalExpr
}

func otherValue() InterpretValue             { return InterpretValue{} }
func evalExprValue(v float32) InterpretValue { return InterpretValue{IsEvalExpr: true, Value: v} }

// InterpretErrorKind discriminates the two ways interpret can fail.
type InterpretErrorKind int

const (
	ErrCannotEval InterpretErrorKind = iota
	ErrParamNotFound
)

// InterpretError is returned when a Command cannot be applied. A failed
// command leaves all interpreter state unchanged.
type InterpretError struct {
	Kind  InterpretErrorKind
	Expr  *Expression // valid when Kind == ErrCannotEval
	Param *Param      // valid when Kind == ErrParamNotFound
}

func (e *InterpretError) Error() string {
	switch e.Kind {
	case ErrParamNotFound:
		return "gcode: assignment target parameter could not be resolved"
	default:
		return "gcode: expression could not be evaluated"
	}
}

// Interpreter owns the variable store and modal state for a session. It
// is itself an EvalContext: GetParam answers bound/unbound honestly,
// but Interpret's own internal evaluation of a right-hand side
// substitutes 0.0 for an unbound read, per spec.md §4.7.
type Interpreter struct {
	store *store
	modal *modalState
	sink  MotionSink
}

// NewInterpreter creates an Interpreter with empty variable maps and
// default modal state (Mm, machine workspace, absolute positioning). A
// nil sink is valid; motion/tool/coolant/speed commands are then no-ops
// beyond updating modal state.
func NewInterpreter(sink MotionSink) *Interpreter {
	return &Interpreter{store: newStore(), modal: newModalState(), sink: sink}
}

// GetParam implements EvalContext for direct reads against the live
// store, honoring indirect (ParamExpr) forms by evaluating the index
// expression against itself first.
func (in *Interpreter) GetParam(p Param) (float32, bool) {
	switch p.Kind {
	case ParamExpr:
		return evalParam(in, p)
	case ParamNumbered:
		if v, ok := predefinedParam(in.modal, p.Numbered); ok {
			return v, true
		}
		return in.store.get(p)
	default:
		return in.store.get(p)
	}
}

func (in *Interpreter) NamedParamExists(name string) bool { return in.store.namedExists(name) }
func (in *Interpreter) ConstFold() bool                   { return false }

// evalExpr evaluates e against the live interpreter state, substituting
// 0.0 for any unbound parameter read instead of failing — this is the
// interpreter's own internal evaluation rule, distinct from the Eval
// method's honest bound/unbound reporting used by a pure EvalContext.
func (in *Interpreter) evalExpr(e Expression) float32 {
	switch e.Kind {
	case ExprLit:
		return e.Lit
	case ExprParam:
		v, _ := in.GetParam(*e.Param)
		return v
	case ExprFuncCall:
		return in.evalFuncCall(*e.Call)
	case ExprBinOp:
		left := in.evalExpr(*e.Left)
		right := in.evalExpr(*e.Right)
		return applyBinOp(e.Op, left, right)
	default:
		return 0
	}
}

func (in *Interpreter) evalFuncCall(c FuncCall) float32 {
	switch c.Kind {
	case CallExists:
		return boolToFloat(existsParam(in, *c.Exists))
	case CallAtan:
		y := in.evalExpr(*c.Arg)
		x := in.evalExpr(*c.ArgX)
		v, _ := FuncCall{Kind: CallAtan, Arg: litExpr(y), ArgX: litExpr(x)}.Eval(in)
		return v
	case CallUnary:
		return evalUnaryFunc(c.Unary, in.evalExpr(*c.Arg))
	default:
		return 0
	}
}

func litExpr(v float32) *Expression { e := Expression{Kind: ExprLit, Lit: v}; return &e }

// Interpret applies a parsed Command, mutating the variable store and/or
// modal state, or forwarding to the MotionSink. A failed command leaves
// all prior state untouched.
func (in *Interpreter) Interpret(cmd Command) (InterpretValue, error) {
	switch cmd.Kind {
	case CmdComment:
		return otherValue(), nil
	case CmdAssign:
		return in.interpretAssign(cmd.AssignTarget, cmd.AssignValue)
	case CmdG:
		return in.interpretG(cmd.G)
	case CmdM:
		return in.interpretM(cmd.M)
	case CmdO:
		// Control-flow execution is the enclosing driver's job; the
		// parsed form is handed back unexecuted (spec.md §4.7, §9).
		return otherValue(), nil
	case CmdS:
		return in.interpretS(cmd.S)
	case CmdT:
		return in.interpretT(cmd.T)
	default:
		return otherValue(), nil
	}
}

func (in *Interpreter) interpretAssign(target Param, expr Expression) (InterpretValue, error) {
	value := in.evalExpr(expr)
	resolved, ok := in.resolveTarget(target)
	if !ok {
		return InterpretValue{}, &InterpretError{Kind: ErrParamNotFound, Param: &target}
	}
	if resolved.Kind == ParamNumbered && in.setPredefinedParam(resolved.Numbered, value) {
		return evalExprValue(value), nil
	}
	in.store.set(resolved, value)
	return evalExprValue(value), nil
}

// setPredefinedParam writes to #5220/#5221.. if num falls in one of
// those ranges, returning true if it handled the write. #5220 must be an
// integer 1-9, matching parameters.go's setNumParam.
func (in *Interpreter) setPredefinedParam(num uint64, value float32) bool {
	switch {
	case num == curCoordSysParam:
		n := int(value)
		if float32(n) != value || n < 1 || n > 9 {
			return false
		}
		in.modal.workspace = Workspace(n)
		return true
	case num >= coordSysParam && num < coordSysParam+coordSysParamStep*9:
		offset := int(num) - coordSysParam
		sys := offset/coordSysParamStep + 1
		axis := offset % coordSysParamStep
		if axis < NumAxes {
			in.modal.coordSysOffset[sys][axis] = value
		}
		return true
	default:
		return false
	}
}

// resolveTarget reduces an indirect (ParamExpr) assignment target to a
// direct numbered Param; direct targets pass through unchanged. Failure
// is only possible for an indirect target whose index cannot evaluate.
func (in *Interpreter) resolveTarget(p Param) (Param, bool) {
	if p.Kind != ParamExpr {
		return p, true
	}
	slot, ok := p.Expr.Eval(in)
	if !ok {
		return Param{}, false
	}
	return numberedParam(uint64(slot)), true
}

func (in *Interpreter) interpretG(g Gcode) (InterpretValue, error) {
	switch g.Kind {
	case G20:
		in.modal.unit = UnitInch
		return otherValue(), nil
	case G21:
		in.modal.unit = UnitMm
		return otherValue(), nil
	case G53:
		in.modal.workspace = WorkspaceMachine
		return otherValue(), nil
	case G54:
		in.modal.workspace = WorkspaceG54
		return otherValue(), nil
	case G55:
		in.modal.workspace = WorkspaceG55
		return otherValue(), nil
	case G56:
		in.modal.workspace = WorkspaceG56
		return otherValue(), nil
	case G57:
		in.modal.workspace = WorkspaceG57
		return otherValue(), nil
	case G58:
		in.modal.workspace = WorkspaceG58
		return otherValue(), nil
	case G59:
		in.modal.workspace = WorkspaceG59
		return otherValue(), nil
	case G59_1:
		in.modal.workspace = WorkspaceG59_1
		return otherValue(), nil
	case G59_2:
		in.modal.workspace = WorkspaceG59_2
		return otherValue(), nil
	case G59_3:
		in.modal.workspace = WorkspaceG59_3
		return otherValue(), nil
	case G90:
		in.modal.positioning = PositioningAbsolute
		return otherValue(), nil
	case G91:
		in.modal.positioning = PositioningRelative
		return otherValue(), nil
	case G0, G1:
		return in.interpretMove(g)
	case G92, G92_1, G92_2, G92_3:
		return in.interpretG92(g)
	case G10L2, G10L20:
		return in.interpretG10(g)
	case G28, G28_1, G30, G30_1:
		return in.interpretPredefinedMove(g)
	default:
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval}
	}
}

func (in *Interpreter) interpretMove(g Gcode) (InterpretValue, error) {
	values, expr, ok := in.evalAxes(g.Axes)
	if !ok {
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval, Expr: expr}
	}
	if in.sink != nil {
		byLetter := make(map[byte]float32, len(values))
		for idx, v := range values {
			byLetter[axisLetters[idx]] = v
		}
		in.sink.Move(byLetter, g.Kind == G0, in.modal.feedrate)
	}
	for idx, v := range values {
		in.modal.position[idx] = v
	}
	return otherValue(), nil
}

// evalAxes evaluates every set axis in a (possibly nil) Axes value.
// Unset axes keep the interpreter's current position, matching modal
// carry-over of unmentioned axes across moves.
func (in *Interpreter) evalAxes(axes *Axes) (values [NumAxes]float32, failed *Expression, ok bool) {
	values = in.modal.position
	if axes == nil {
		return values, nil, true
	}
	for i := 0; i < NumAxes; i++ {
		if !axes.Set[i] {
			continue
		}
		v, ok := axes.Expr[i].Eval(in)
		if !ok {
			return values, axes.Expr[i], false
		}
		values[i] = v
	}
	return values, nil, true
}

// interpretG92 applies the work-offset family: G92 sets the current
// axes' offset so the programmed position becomes the given values;
// G92.1 and G92.2 both zero the offset (single register, matching
// engine.go's simplified treatment). G92.3 does nothing: no copy of a
// cleared offset is kept, so there is nothing to restore.
func (in *Interpreter) interpretG92(g Gcode) (InterpretValue, error) {
	switch g.Kind {
	case G92:
		values, expr, ok := in.evalAxes(g.Axes)
		if !ok {
			return InterpretValue{}, &InterpretError{Kind: ErrCannotEval, Expr: expr}
		}
		for i := range values {
			in.modal.workOffset[i] = values[i] - in.modal.position[i]
		}
		return otherValue(), nil
	case G92_1, G92_2:
		in.modal.workOffset = [NumAxes]float32{}
		return otherValue(), nil
	default: // G92_3
		return otherValue(), nil
	}
}

// interpretG10 programs a work-offset register directly (L2) or via the
// current position (L20), mirroring engine.go's modifyPositions.
func (in *Interpreter) interpretG10(g Gcode) (InterpretValue, error) {
	values, expr, ok := in.evalAxes(g.Axes)
	if !ok {
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval, Expr: expr}
	}
	sys := g.CoordSys
	if sys < 1 || sys > 9 {
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval}
	}
	for i, axis := range g.Axes.Set {
		if !axis {
			continue
		}
		if g.Kind == G10L2 {
			in.modal.coordSysOffset[sys][i] = values[i]
		} else {
			in.modal.coordSysOffset[sys][i] = in.modal.position[i] - values[i]
		}
	}
	return otherValue(), nil
}

// interpretPredefinedMove handles G28/G28.1/G30/G30.1 by forwarding a
// rapid move to the sink at the evaluated g.Axes, or at the current
// position when g.Axes is nil. The parser attaches no axis words to these
// codes, so the move always targets the current position; no home or
// reference position is stored or moved to.
func (in *Interpreter) interpretPredefinedMove(g Gcode) (InterpretValue, error) {
	values, expr, ok := in.evalAxes(g.Axes)
	if !ok {
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval, Expr: expr}
	}
	if in.sink != nil {
		byLetter := make(map[byte]float32, NumAxes)
		for idx, v := range values {
			byLetter[axisLetters[idx]] = v
		}
		in.sink.Move(byLetter, true, 0)
	}
	in.modal.position = values
	return otherValue(), nil
}

func (in *Interpreter) interpretM(m Mcode) (InterpretValue, error) {
	switch m.Kind {
	case M3:
		in.modal.spindleOn = true
		if in.sink != nil {
			in.sink.SpindleCommand(true, true)
		}
	case M4:
		in.modal.spindleOn = true
		if in.sink != nil {
			in.sink.SpindleCommand(true, false)
		}
	case M5:
		in.modal.spindleOn = false
		if in.sink != nil {
			in.sink.SpindleCommand(false, false)
		}
	case M6:
		if m.Tool != nil {
			in.modal.tool = *m.Tool
		}
		if in.sink != nil {
			in.sink.ToolChange(in.modal.tool)
		}
	case M7:
		in.modal.coolant = CoolantMist
		if in.sink != nil {
			in.sink.CoolantCommand(CoolantMist)
		}
	case M8:
		in.modal.coolant = CoolantFlood
		if in.sink != nil {
			in.sink.CoolantCommand(CoolantFlood)
		}
	case M9:
		in.modal.coolant = CoolantOff
		if in.sink != nil {
			in.sink.CoolantCommand(CoolantOff)
		}
	}
	return otherValue(), nil
}

func (in *Interpreter) interpretS(s Scode) (InterpretValue, error) {
	v, ok := s.Expr.Eval(in)
	if !ok {
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval, Expr: &s.Expr}
	}
	if in.sink != nil {
		in.sink.SpeedCommand(v)
	}
	return evalExprValue(v), nil
}

func (in *Interpreter) interpretT(t Tcode) (InterpretValue, error) {
	v, ok := t.Expr.Eval(in)
	if !ok {
		return InterpretValue{}, &InterpretError{Kind: ErrCannotEval, Expr: &t.Expr}
	}
	if in.sink != nil {
		in.sink.ToolSelect(v)
	}
	return evalExprValue(v), nil
}

// Modal returns a snapshot of the current modal state, for driver
// introspection (e.g. the demo CLI's "vars" subcommand).
func (in *Interpreter) Modal() (unit Unit, ws Workspace, positioning Positioning, feedrate float32) {
	return in.modal.unit, in.modal.workspace, in.modal.positioning, in.modal.feedrate
}

// SetUnit sets the starting unit before any line has been interpreted,
// the same field G20/G21 switch later; it lets a driver default a
// program written without a leading G20/G21 to inch rather than the
// otherwise-default mm.
func (in *Interpreter) SetUnit(u Unit) { in.modal.unit = u }
