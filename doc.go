// Package rs274 implements a parser, expression evaluator, and command
// interpreter for a dialect of RS-274 / LinuxCNC-style G-code.
//
// A byte-level recursive-descent parser (lex.go, param.go, expr.go,
// command.go) turns a single line of text into a Command. The command's
// expression sub-trees can be evaluated against an EvalContext (eval.go,
// binop.go); the parser itself evaluates nothing and does no constant
// folding. An Interpreter (interpreter.go) owns the variable store
// (store.go) and modal machine state (modal.go) and applies a Command by
// mutating both.
//
// Reading lines off a transport and driving motion hardware are not this
// package's job; see LineReader and MotionSink in adapter.go for the
// contracts an embedder implements.
package rs274
