package symexpr

// maxRewritePasses bounds the fixpoint loop as a safety net against a
// rule cycle that would otherwise never converge. Every rule in this
// file is designed to strictly reduce some measure of the tree (node
// count, or target-variable occurrences for equation isolation), so a
// well-formed input should never come close to this bound.
const maxRewritePasses = 10000

// OptimizeExpression repeatedly applies the rewrite rules in this
// file to expr until a pass produces no change, then returns the
// result. target is the name of a solve variable when called as part
// of equation isolation (see OptimizeEquation); pass "" when there is
// no equation context, which disables the hoisting rule.
func OptimizeExpression(expr Expr, target string) Expr {
	current := expr
	for i := 0; i < maxRewritePasses; i++ {
		next := optimizeNode(current, target)
		if next.Equal(current) {
			return next
		}
		current = next
	}
	panic(&RewriteError{Message: "optimize_expression did not converge"})
}

// optimizeNode applies one bottom-up rewrite pass: children are
// optimized first (recursively, via this same function), then the
// first matching rule for the resulting node is applied. At most one
// rule fires per call; further reductions happen on the next call
// from OptimizeExpression's fixpoint loop.
func optimizeNode(expr Expr, target string) Expr {
	switch e := expr.(type) {
	case *Number:
		return e

	case *Monomial:
		return newMonomial(e.Coefficient, e.Variable, e.Exponent)

	case *Function:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = optimizeNode(a, target)
		}
		return &Function{Name: e.Name, Args: args}

	case *UnaryMinus:
		operand := optimizeNode(e.Operand, target)
		if rewritten, ok := applyUnaryMinusRules(operand, target); ok {
			return rewritten
		}
		return &UnaryMinus{Operand: operand}

	case *BinOp:
		if e.Op == OpEquals {
			// Equation roots are only ever rewritten through
			// OptimizeEquation, which drives each side through this
			// function independently.
			return &BinOp{LHS: optimizeNode(e.LHS, target), Op: OpEquals, RHS: optimizeNode(e.RHS, target)}
		}
		lhs := optimizeNode(e.LHS, target)
		rhs := optimizeNode(e.RHS, target)
		if rewritten, ok := applyBinOpRules(lhs, e.Op, rhs); ok {
			return rewritten
		}
		if rewritten, ok := hoistTarget(lhs, e.Op, rhs, target); ok {
			return rewritten
		}
		return &BinOp{LHS: lhs, Op: e.Op, RHS: rhs}

	default:
		panic(&RewriteError{Message: "optimize_node: unreachable expression variant"})
	}
}

// applyUnaryMinusRules matches, in order, the three UnaryMinus
// identities:
//
//	-(-x)  -> x                       (double negation)
//	-(0)   -> 0                       (zero)
//	-(a OP b) -> (-a) OP (-b)         (distribute; only meaningful
//	                                   during equation isolation, where
//	                                   crossing the = sign needs the
//	                                   negation pushed onto both terms)
//
// The first matching rule wins.
func applyUnaryMinusRules(operand Expr, target string) (Expr, bool) {
	if inner, ok := operand.(*UnaryMinus); ok {
		return inner.Operand, true
	}
	if n, ok := operand.(*Number); ok && n.Value == 0 {
		return &Number{Value: 0}, true
	}
	if target != "" {
		if b, ok := operand.(*BinOp); ok && b.Op != OpEquals {
			return &BinOp{LHS: &UnaryMinus{Operand: b.LHS}, Op: b.Op, RHS: &UnaryMinus{Operand: b.RHS}}, true
		}
	}
	return nil, false
}

// applyBinOpRules matches the per-operator identity, cancellation,
// sign-normalization, and monomial-combination rules. lhs and rhs are
// assumed already optimized.
func applyBinOpRules(lhs Expr, op Op, rhs Expr) (Expr, bool) {
	switch op {
	case OpAdd:
		return applyAddRules(lhs, rhs)
	case OpSubtract:
		return applySubtractRules(lhs, rhs)
	case OpMultiply:
		return applyMultiplyRules(lhs, rhs)
	case OpDivide:
		return applyDivideRules(lhs, rhs)
	case OpModulo:
		return applyModuloRules(lhs, rhs)
	case OpPower:
		return applyPowerRules(lhs, rhs)
	default:
		return nil, false
	}
}

func isZero(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.Value == 0
}

func isOne(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.Value == 1
}

func asMonomial(e Expr) (*Monomial, bool) {
	m, ok := e.(*Monomial)
	return m, ok
}

func applyAddRules(lhs, rhs Expr) (Expr, bool) {
	if isZero(lhs) {
		return rhs, true
	}
	if isZero(rhs) {
		return lhs, true
	}
	lm, lIsMono := asMonomial(lhs)
	rm, rIsMono := asMonomial(rhs)
	if lIsMono && rIsMono && lm.Variable == rm.Variable && lm.Exponent == rm.Exponent {
		return newMonomial(lm.Coefficient+rm.Coefficient, lm.Variable, lm.Exponent), true
	}
	// a+a -> 2a is suppressed when both sides are monomials so the
	// combine rule above fires instead (it is strictly more precise:
	// it also handles differing coefficients).
	if !lIsMono && !rIsMono && lhs.Equal(rhs) {
		return &BinOp{LHS: &Number{Value: 2}, Op: OpMultiply, RHS: lhs}, true
	}
	if um, ok := rhs.(*UnaryMinus); ok {
		return &BinOp{LHS: lhs, Op: OpSubtract, RHS: um.Operand}, true
	}
	return nil, false
}

func applySubtractRules(lhs, rhs Expr) (Expr, bool) {
	if isZero(rhs) {
		return lhs, true
	}
	if isZero(lhs) {
		return &UnaryMinus{Operand: rhs}, true
	}
	if lhs.Equal(rhs) {
		return &Number{Value: 0}, true
	}
	if um, ok := rhs.(*UnaryMinus); ok {
		return &BinOp{LHS: lhs, Op: OpAdd, RHS: um.Operand}, true
	}
	// Monomial combination under subtraction is not a separate
	// identity in the source grammar, but it is required for
	// equation-isolation terms like "4Y - 6Y" to collapse the way the
	// reference engine's combine step does for both "+" and "-".
	lm, lIsMono := asMonomial(lhs)
	rm, rIsMono := asMonomial(rhs)
	if lIsMono && rIsMono && lm.Variable == rm.Variable && lm.Exponent == rm.Exponent {
		return newMonomial(lm.Coefficient-rm.Coefficient, lm.Variable, lm.Exponent), true
	}
	return nil, false
}

func applyMultiplyRules(lhs, rhs Expr) (Expr, bool) {
	if isZero(lhs) || isZero(rhs) {
		return &Number{Value: 0}, true
	}
	if isOne(lhs) {
		return rhs, true
	}
	if isOne(rhs) {
		return lhs, true
	}
	lm, lIsMono := asMonomial(lhs)
	rm, rIsMono := asMonomial(rhs)
	if lIsMono && rIsMono && lm.Variable == rm.Variable {
		return newMonomial(lm.Coefficient*rm.Coefficient, lm.Variable, lm.Exponent+rm.Exponent), true
	}
	if lIsMono && !rIsMono {
		if n, ok := rhs.(*Number); ok {
			return newMonomial(lm.Coefficient*n.Value, lm.Variable, lm.Exponent), true
		}
	}
	if rIsMono && !lIsMono {
		if n, ok := lhs.(*Number); ok {
			return newMonomial(rm.Coefficient*n.Value, rm.Variable, rm.Exponent), true
		}
	}
	if !lIsMono && !rIsMono && lhs.Equal(rhs) {
		return &BinOp{LHS: lhs, Op: OpPower, RHS: &Number{Value: 2}}, true
	}
	if lp, ok := lhs.(*BinOp); ok && lp.Op == OpPower {
		if rp, ok2 := rhs.(*BinOp); ok2 && rp.Op == OpPower && lp.LHS.Equal(rp.LHS) {
			return &BinOp{LHS: lp.LHS, Op: OpPower, RHS: &BinOp{LHS: lp.RHS, Op: OpAdd, RHS: rp.RHS}}, true
		}
	}
	return nil, false
}

func applyDivideRules(lhs, rhs Expr) (Expr, bool) {
	if isOne(rhs) {
		return lhs, true
	}
	if !isZero(lhs) && lhs.Equal(rhs) {
		return &Number{Value: 1}, true
	}
	if lm, ok := asMonomial(lhs); ok {
		if n, ok2 := rhs.(*Number); ok2 {
			return newMonomial(lm.Coefficient/n.Value, lm.Variable, lm.Exponent), true
		}
	}
	return nil, false
}

func applyModuloRules(lhs, rhs Expr) (Expr, bool) {
	if isOne(rhs) {
		return &Number{Value: 0}, true
	}
	return nil, false
}

func applyPowerRules(lhs, rhs Expr) (Expr, bool) {
	if isZero(rhs) {
		return &Number{Value: 1}, true
	}
	if isOne(rhs) {
		return lhs, true
	}
	if n, ok := rhs.(*Number); ok && n.Value < 0 {
		positive := &BinOp{LHS: lhs, Op: OpPower, RHS: &Number{Value: -n.Value}}
		return &BinOp{LHS: &Number{Value: 1}, Op: OpDivide, RHS: positive}, true
	}
	if um, ok := rhs.(*UnaryMinus); ok {
		positive := &BinOp{LHS: lhs, Op: OpPower, RHS: um.Operand}
		return &BinOp{LHS: &Number{Value: 1}, Op: OpDivide, RHS: positive}, true
	}
	return nil, false
}

// hoistTarget implements the monomial-hoisting rule used to make
// forward progress isolating target in equation mode: given
// "(L innerOp R) outerOp M" where innerOp and outerOp share a
// precedence level, if L or R is a Monomial naming target, that
// monomial is bubbled out to take M's former place at the root, with
// the other two operands recombined underneath via innerOp. This is
// the only rule that consults target outside of equation isolation
// itself (OptimizeExpression is called with target set while
// isolating a side of an equation).
func hoistTarget(outerL Expr, outerOp Op, outerR Expr, target string) (Expr, bool) {
	if target == "" {
		return nil, false
	}
	inner, ok := outerL.(*BinOp)
	if !ok || inner.Op == OpEquals || inner.Op.Precedence() != outerOp.Precedence() {
		return nil, false
	}

	if m, ok := asMonomial(inner.LHS); ok && m.Variable == target {
		migrated := Expr(m)
		if outerOp == OpSubtract {
			migrated = &UnaryMinus{Operand: m}
		}
		newInner := &BinOp{LHS: outerR, Op: inner.Op, RHS: inner.RHS}
		return &BinOp{LHS: newInner, Op: outerOp, RHS: migrated}, true
	}

	if m, ok := asMonomial(inner.RHS); ok && m.Variable == target {
		newInner := &BinOp{LHS: inner.LHS, Op: outerOp, RHS: outerR}
		return &BinOp{LHS: newInner, Op: inner.Op, RHS: m}, true
	}

	return nil, false
}

// OptimizeEquation solves expr — which must be a BinOp rooted at
// OpEquals, as returned by ParseEquation — for target, repeatedly
// simplifying each side and applying a single equation-isolation rule
// until a pass leaves the equation unchanged.
func OptimizeEquation(expr Expr, target string) Expr {
	root, ok := expr.(*BinOp)
	if !ok || root.Op != OpEquals {
		panic(&RewriteError{Message: "optimize_equation: root is not an equation"})
	}

	lhs := OptimizeExpression(root.LHS, target)
	rhs := OptimizeExpression(root.RHS, target)
	current := &BinOp{LHS: lhs, Op: OpEquals, RHS: rhs}

	for i := 0; i < maxRewritePasses; i++ {
		newLHS, newRHS, applied := applyEquationRule(current.LHS, current.RHS, target)
		if !applied {
			return current
		}
		next := &BinOp{
			LHS: OptimizeExpression(newLHS, target),
			Op:  OpEquals,
			RHS: OptimizeExpression(newRHS, target),
		}
		if next.Equal(current) {
			return next
		}
		current = next
	}
	panic(&RewriteError{Message: "optimize_equation did not converge"})
}

// applyEquationRule tries, in order, the ten equation-isolation rules
// that move a target-named term from one side of "=" to the other.
// The first matching rule wins; none matching means the target is
// already isolated (or cannot be isolated further by these rules).
func applyEquationRule(lhs, rhs Expr, target string) (newLHS, newRHS Expr, applied bool) {
	if b, ok := lhs.(*BinOp); ok {
		switch b.Op {
		case OpAdd:
			if m, ok2 := asMonomial(b.LHS); ok2 && m.Variable == target {
				// T + a = b -> T = b - a
				return m, &BinOp{LHS: rhs, Op: OpSubtract, RHS: b.RHS}, true
			}
			if m, ok2 := asMonomial(b.RHS); ok2 && m.Variable == target {
				// a + T = b -> T = b - a
				return m, &BinOp{LHS: rhs, Op: OpSubtract, RHS: b.LHS}, true
			}
		case OpSubtract:
			if m, ok2 := asMonomial(b.LHS); ok2 && m.Variable == target {
				// T - a = b -> T = b + a
				return m, &BinOp{LHS: rhs, Op: OpAdd, RHS: b.RHS}, true
			}
			if m, ok2 := asMonomial(b.RHS); ok2 && m.Variable == target {
				// a - T = b -> T = -b + a
				return m, &BinOp{LHS: &UnaryMinus{Operand: rhs}, Op: OpAdd, RHS: b.LHS}, true
			}
		}
	}

	if b, ok := rhs.(*BinOp); ok {
		switch b.Op {
		case OpAdd:
			if m, ok2 := asMonomial(b.LHS); ok2 && m.Variable == target {
				// a = T + b -> a - T = b
				return &BinOp{LHS: lhs, Op: OpSubtract, RHS: m}, b.RHS, true
			}
			if m, ok2 := asMonomial(b.RHS); ok2 && m.Variable == target {
				// a = b + T -> a - T = b
				return &BinOp{LHS: lhs, Op: OpSubtract, RHS: m}, b.LHS, true
			}
		case OpSubtract:
			if m, ok2 := asMonomial(b.LHS); ok2 && m.Variable == target {
				// a = T - b -> a - T = -b
				return &BinOp{LHS: lhs, Op: OpSubtract, RHS: m}, &UnaryMinus{Operand: b.RHS}, true
			}
			if m, ok2 := asMonomial(b.RHS); ok2 && m.Variable == target {
				// a = b - T -> a + T = b
				return &BinOp{LHS: lhs, Op: OpAdd, RHS: m}, b.LHS, true
			}
		}
	}

	if um, ok := lhs.(*UnaryMinus); ok {
		if m, ok2 := asMonomial(um.Operand); ok2 && m.Variable == target {
			// -(T) = a -> T = -(a)
			return m, &UnaryMinus{Operand: rhs}, true
		}
	}

	if m, ok := asMonomial(lhs); ok && m.Variable == target && m.Coefficient != 1 {
		// cX^n = a -> X^n = a/c
		return newMonomial(1, m.Variable, m.Exponent), &BinOp{LHS: rhs, Op: OpDivide, RHS: &Number{Value: m.Coefficient}}, true
	}
	if m, ok := asMonomial(rhs); ok && m.Variable == target && m.Coefficient != 1 {
		// a = cX^n -> a/c = X^n (symmetric extension: the reference
		// table only lists the left-hand form, but isolation must work
		// regardless of which side the target lands on)
		return &BinOp{LHS: lhs, Op: OpDivide, RHS: &Number{Value: m.Coefficient}}, newMonomial(1, m.Variable, m.Exponent), true
	}

	return nil, nil, false
}
