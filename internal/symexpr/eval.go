package symexpr

import (
	"fmt"
	"math"
)

// evalPrecision is the number of decimal places Evaluate rounds its
// result to, matching the reference evaluator's fixed precision.
const evalPrecision = 15

// degToRad converts degrees to radians; every trig function in the
// library takes its argument in degrees.
func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

type evalFunc struct {
	arity int
	call  func(args []float64) float64
}

var evalFuncs = map[string]evalFunc{
	"sin":   {1, func(a []float64) float64 { return math.Sin(degToRad(a[0])) }},
	"cos":   {1, func(a []float64) float64 { return math.Cos(degToRad(a[0])) }},
	"tan":   {1, func(a []float64) float64 { return math.Tan(degToRad(a[0])) }},
	"floor": {1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"round": {1, func(a []float64) float64 { return math.Round(a[0]) }},
	"trunc": {1, func(a []float64) float64 { return math.Trunc(a[0]) }},
	"fract": {1, func(a []float64) float64 { _, frac := math.Modf(a[0]); return frac }},
	"sqrt":  {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"pow":   {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"min":   {2, func(a []float64) float64 { return math.Min(a[0], a[1]) }},
	"max":   {2, func(a []float64) float64 { return math.Max(a[0], a[1]) }},
}

// Evaluate parses and numerically evaluates source as a plain
// expression, rounding the result to evalPrecision decimal places. It
// returns an EvalError wrapping the parse failure if source is
// malformed, and EqualityInEval if source is an equation (Parse never
// produces one, but "=" is still rejected as an invalid token rather
// than silently ignored).
func Evaluate(source string) (float64, error) {
	expr, err := Parse(source)
	if err != nil {
		return 0, &EvalError{Kind: ParseFailure, Err: err}
	}
	return EvaluateExpr(expr)
}

// EvaluateExpr numerically evaluates an already-parsed tree, rounding
// the result to evalPrecision decimal places. Unlike Evaluate it can
// be handed the result of ParseEquation, in which case it returns
// EqualityInEval: evaluate has no notion of solving, only of reducing
// a pure expression to a number.
func EvaluateExpr(expr Expr) (float64, error) {
	v, err := evalExpr(expr)
	if err != nil {
		return 0, err
	}
	return Round(v, evalPrecision), nil
}

func evalExpr(expr Expr) (float64, error) {
	switch e := expr.(type) {
	case *Number:
		return e.Value, nil

	case *UnaryMinus:
		v, err := evalExpr(e.Operand)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *Monomial:
		return 0, &EvalError{Kind: UnboundVariable, Name: e.Variable}

	case *BinOp:
		if e.Op == OpEquals {
			return 0, &EvalError{Kind: EqualityInEval}
		}
		lhs, err := evalExpr(e.LHS)
		if err != nil {
			return 0, err
		}
		rhs, err := evalExpr(e.RHS)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case OpAdd:
			return lhs + rhs, nil
		case OpSubtract:
			return lhs - rhs, nil
		case OpMultiply:
			return lhs * rhs, nil
		case OpDivide:
			return lhs / rhs, nil
		case OpModulo:
			return math.Abs(math.Mod(lhs, rhs)), nil
		case OpPower:
			return math.Pow(lhs, rhs), nil
		default:
			return 0, &EvalError{Kind: EqualityInEval}
		}

	case *Function:
		spec, ok := evalFuncs[e.Name]
		if !ok {
			return 0, &EvalError{Kind: UnknownFunction, Name: e.Name}
		}
		if len(e.Args) != spec.arity {
			return 0, &EvalError{Kind: UnknownFunction, Name: fmt.Sprintf("%s (expects %d arguments, got %d)", e.Name, spec.arity, len(e.Args))}
		}
		args := make([]float64, len(e.Args))
		for i, a := range e.Args {
			v, err := evalExpr(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return spec.call(args), nil

	default:
		panic(&RewriteError{Message: "eval_expr: unreachable expression variant"})
	}
}
