package rs274

import "math"

// EvalContext supplies the state an Expression needs to evaluate: current
// parameter values and whether constant folding is permitted. The
// Interpreter implements it, as do the tests' context doubles.
type EvalContext interface {
	// GetParam returns the current value of p and whether it is bound.
	// An unbound numbered or named parameter reads as (0, false); the
	// caller decides whether that is an error or a silent zero.
	GetParam(p Param) (value float32, bound bool)

	// NamedParamExists reports whether a named parameter currently has a
	// binding, for EXISTS[#<name>]. EXISTS on a direct numbered
	// parameter does not call it and always reports true.
	NamedParamExists(name string) bool

	// ConstFold reports whether the caller wants expressions folded to
	// literals when every operand is currently known. The parser in this
	// package does not consult it and never folds.
	ConstFold() bool
}

// Eval evaluates an expression against ctx. It returns false whenever any
// operand it depends on is unresolvable under ctx (e.g. a parameter ctx
// reports as unbound) — the result is then (0, false) and the caller should
// keep the expression unevaluated for the interpreter to handle later.
func (e Expression) Eval(ctx EvalContext) (float32, bool) {
	switch e.Kind {
	case ExprLit:
		return e.Lit, true
	case ExprParam:
		return evalParam(ctx, *e.Param)
	case ExprFuncCall:
		return e.Call.Eval(ctx)
	case ExprBinOp:
		left, ok := e.Left.Eval(ctx)
		if !ok {
			return 0, false
		}
		// Both sides are always evaluated, even for AND/OR/XOR: RS-274
		// expressions are side-effect-free, so there is nothing for
		// short-circuiting to save, and the reference implementation
		// evaluates unconditionally.
		right, ok := e.Right.Eval(ctx)
		if !ok {
			return 0, false
		}
		return applyBinOp(e.Op, left, right), true
	default:
		return 0, false
	}
}

// evalParam resolves a Param to a value. Indirect forms (##1, ##<name>,
// #[expr]) evaluate their inner expression first to obtain a numbered
// slot, then look that slot up; direct forms look themselves up.
func evalParam(ctx EvalContext, p Param) (float32, bool) {
	switch p.Kind {
	case ParamExpr:
		slot, ok := p.Expr.Eval(ctx)
		if !ok {
			return 0, false
		}
		return ctx.GetParam(numberedParam(uint64(slot)))
	default:
		return ctx.GetParam(p)
	}
}

// Eval evaluates a function call. EXISTS never fails to resolve: it
// always has an answer (bound or not), unlike every other call form,
// which needs its argument(s) to resolve first.
func (c FuncCall) Eval(ctx EvalContext) (float32, bool) {
	switch c.Kind {
	case CallExists:
		return boolToFloat(existsParam(ctx, *c.Exists)), true
	case CallAtan:
		y, ok := c.Arg.Eval(ctx)
		if !ok {
			return 0, false
		}
		x, ok := c.ArgX.Eval(ctx)
		if !ok {
			return 0, false
		}
		return float32(math.Atan2(float64(y), float64(x))), true
	case CallUnary:
		arg, ok := c.Arg.Eval(ctx)
		if !ok {
			return 0, false
		}
		return evalUnaryFunc(c.Unary, arg), true
	default:
		return 0, false
	}
}

func existsParam(ctx EvalContext, p Param) bool {
	switch p.Kind {
	case ParamNamedLocal, ParamNamedGlobal:
		return ctx.NamedParamExists(p.Name)
	case ParamExpr:
		slot, ok := p.Expr.Eval(ctx)
		if !ok {
			return false
		}
		_, bound := ctx.GetParam(numberedParam(uint64(slot)))
		return bound
	default:
		// A direct numbered parameter is always reported as existing,
		// whether or not it has been written.
		return true
	}
}

// evalUnaryFunc applies a single-argument function. Trigonometric
// functions take and return radians: neither the spec's evaluator
// semantics nor the Rust original apply a degree conversion (ATAN[1]/[1]
// evaluates to pi/4, not 45).
func evalUnaryFunc(fn UnaryFuncName, arg float32) float32 {
	a := float64(arg)
	switch fn {
	case FuncAbs:
		if arg < 0 {
			return -arg
		}
		return arg
	case FuncAcos:
		return float32(math.Acos(a))
	case FuncAsin:
		return float32(math.Asin(a))
	case FuncCos:
		return float32(math.Cos(a))
	case FuncExp:
		return float32(math.Exp(a))
	case FuncFix:
		return float32(math.Floor(a))
	case FuncFup:
		return float32(math.Ceil(a))
	case FuncRound:
		return roundHalfAwayFromZero(arg)
	case FuncLn:
		return float32(math.Log(a))
	case FuncSin:
		return float32(math.Sin(a))
	case FuncSqrt:
		return float32(math.Sqrt(a))
	case FuncTan:
		return float32(math.Tan(a))
	default:
		panic("rs274: unhandled unary function")
	}
}

// roundHalfAwayFromZero matches the Rust original's f32::round: halves
// round away from zero in both directions, so ROUND[-1.5] == -2.0, not
// -1.0 as banker's rounding or round-half-to-even would give.
func roundHalfAwayFromZero(f float32) float32 {
	if f < 0 {
		return -float32(math.Floor(float64(-f) + 0.5))
	}
	return float32(math.Floor(float64(f) + 0.5))
}

func powf32(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func modf32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}
