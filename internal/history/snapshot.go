package history

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/symcalc/internal/symexpr"
)

// exprSnapshot is a concrete, rezi-encodable mirror of a
// symexpr.Expr tree: symexpr.Expr is a closed interface, and rezi
// encodes concrete struct shapes, so a history record snapshots the
// tree into this tagged form rather than handing rezi the interface
// directly, the same way server/dao/sqlite flattens a *game.State
// into bytes before handing it to rezi.EncBinary.
type exprSnapshot struct {
	// Tag identifies which symexpr.Expr variant this node mirrors:
	// "num", "neg", "bin", "func", or "mono".
	Tag string

	Number float64

	Operand *exprSnapshot

	Op  string
	LHS *exprSnapshot
	RHS *exprSnapshot

	Name string
	Args []exprSnapshot

	Variable    string
	Coefficient float64
	Exponent    float64
}

func snapshotOf(e symexpr.Expr) exprSnapshot {
	switch v := e.(type) {
	case *symexpr.Number:
		return exprSnapshot{Tag: "num", Number: v.Value}
	case *symexpr.UnaryMinus:
		operand := snapshotOf(v.Operand)
		return exprSnapshot{Tag: "neg", Operand: &operand}
	case *symexpr.BinOp:
		lhs := snapshotOf(v.LHS)
		rhs := snapshotOf(v.RHS)
		return exprSnapshot{Tag: "bin", Op: v.Op.String(), LHS: &lhs, RHS: &rhs}
	case *symexpr.Function:
		args := make([]exprSnapshot, len(v.Args))
		for i, a := range v.Args {
			args[i] = snapshotOf(a)
		}
		return exprSnapshot{Tag: "func", Name: v.Name, Args: args}
	case *symexpr.Monomial:
		return exprSnapshot{Tag: "mono", Variable: v.Variable, Coefficient: v.Coefficient, Exponent: v.Exponent}
	default:
		panic(fmt.Sprintf("history: unreachable expression variant %T", e))
	}
}

func opFromString(s string) (symexpr.Op, error) {
	switch s {
	case "+":
		return symexpr.OpAdd, nil
	case "-":
		return symexpr.OpSubtract, nil
	case "*":
		return symexpr.OpMultiply, nil
	case "/":
		return symexpr.OpDivide, nil
	case "%":
		return symexpr.OpModulo, nil
	case "^":
		return symexpr.OpPower, nil
	case "=":
		return symexpr.OpEquals, nil
	default:
		return 0, fmt.Errorf("unknown operator %q in stored snapshot", s)
	}
}

func (s exprSnapshot) toExpr() (symexpr.Expr, error) {
	switch s.Tag {
	case "num":
		return &symexpr.Number{Value: s.Number}, nil
	case "neg":
		operand, err := s.Operand.toExpr()
		if err != nil {
			return nil, err
		}
		return &symexpr.UnaryMinus{Operand: operand}, nil
	case "bin":
		op, err := opFromString(s.Op)
		if err != nil {
			return nil, err
		}
		lhs, err := s.LHS.toExpr()
		if err != nil {
			return nil, err
		}
		rhs, err := s.RHS.toExpr()
		if err != nil {
			return nil, err
		}
		return &symexpr.BinOp{LHS: lhs, Op: op, RHS: rhs}, nil
	case "func":
		args := make([]symexpr.Expr, len(s.Args))
		for i, a := range s.Args {
			arg, err := a.toExpr()
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &symexpr.Function{Name: s.Name, Args: args}, nil
	case "mono":
		return &symexpr.Monomial{Variable: s.Variable, Coefficient: s.Coefficient, Exponent: s.Exponent}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot tag %q", s.Tag)
	}
}

// EncodeAST snapshots expr into the rezi-encoded bytes stored alongside
// a Record.
func EncodeAST(expr symexpr.Expr) []byte {
	snap := snapshotOf(expr)
	return rezi.EncBinary(&snap)
}

// DecodeAST reverses EncodeAST, reconstructing the original expression
// tree from stored bytes.
func DecodeAST(data []byte) (symexpr.Expr, error) {
	var snap exprSnapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return nil, fmt.Errorf("rezi decode: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}
	return snap.toExpr()
}
