package symexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEval(t *testing.T, source string) float64 {
	t.Helper()
	v, err := Evaluate(source)
	require.NoError(t, err)
	return v
}

func Test_Evaluate_plus(t *testing.T) {
	assert.Equal(t, 7.0, mustEval(t, "2+5"))
	assert.Equal(t, -7.0, mustEval(t, "-2+-5"))
	assert.Equal(t, 14.0, mustEval(t, "2+5+7"))
}

func Test_Evaluate_minus(t *testing.T) {
	assert.Equal(t, -4.0, mustEval(t, "3-7"))
	assert.Equal(t, 4.0, mustEval(t, "-3--7"))
	assert.Equal(t, -8.0, mustEval(t, "3-7-4"))
}

func Test_Evaluate_multiply(t *testing.T) {
	assert.Equal(t, 18.0, mustEval(t, "6*3"))
	assert.Equal(t, 18.0, mustEval(t, "-6*-3"))
	assert.Equal(t, 144.0, mustEval(t, "6*3*8"))
}

func Test_Evaluate_divide(t *testing.T) {
	assert.Equal(t, 0.1, mustEval(t, "1/10"))
	assert.Equal(t, 0.1, mustEval(t, "-1/-10"))
	assert.Equal(t, 0.02, mustEval(t, "1/10/5"))
}

func Test_Evaluate_modulus(t *testing.T) {
	assert.Equal(t, 1.0, mustEval(t, "3%2"))
	assert.Equal(t, 1.0, mustEval(t, "-3%-2"))
	assert.Equal(t, 1.0, mustEval(t, "3%2%3"))
}

func Test_Evaluate_power(t *testing.T) {
	assert.Equal(t, 9.0, mustEval(t, "3^2"))
	assert.Equal(t, 0.0625, mustEval(t, "-4^-2"))
	assert.Equal(t, 43046721.0, mustEval(t, "3^2^4"))
}

func Test_Evaluate_decimal(t *testing.T) {
	assert.Equal(t, 3.2, mustEval(t, "3.2"))
	assert.Equal(t, -3.2, mustEval(t, "-3.2"))
}

func Test_Evaluate_orderOfOperations(t *testing.T) {
	assert.Equal(t, 14.0, mustEval(t, "2+4*3"))
	assert.Equal(t, 18.0, mustEval(t, "(2+4)*3"))

	assert.Equal(t, -10.0, mustEval(t, "2-4*3"))
	assert.Equal(t, -6.0, mustEval(t, "(2-4)*3"))

	assert.Equal(t, 4.0, mustEval(t, "2+4/2"))
	assert.Equal(t, 3.0, mustEval(t, "(2+4)/2"))

	assert.Equal(t, 0.0, mustEval(t, "2-4/2"))
	assert.Equal(t, -1.0, mustEval(t, "(2-4)/2"))

	assert.Equal(t, 55.0, mustEval(t, "1+2*3^3"))
	assert.Equal(t, 217.0, mustEval(t, "1+(2*3)^3"))
}

func Test_Evaluate_wikipediaExample(t *testing.T) {
	assert.Equal(t, 3.0001220703125, mustEval(t, "3+4*2/(1-5)^2^3"))
}

func Test_Evaluate_functions(t *testing.T) {
	assert.Equal(t, 0.5, mustEval(t, "cos(60)"))
	assert.Equal(t, 0.5, mustEval(t, "sin(30)"))
	assert.Equal(t, 1.0, mustEval(t, "tan(45)"))
	assert.Equal(t, 4.0, mustEval(t, "floor(4.5)"))
	assert.Equal(t, 5.0, mustEval(t, "ceil(4.5)"))
	assert.Equal(t, 5.0, mustEval(t, "round(4.6)"))
	assert.Equal(t, 1.0, mustEval(t, "trunc(1.128)"))
	assert.Equal(t, 0.128, mustEval(t, "fract(1.128)"))
	assert.Equal(t, 2.0, mustEval(t, "sqrt(4)"))
	assert.Equal(t, 16.0, mustEval(t, "pow(4, 2)"))
	assert.Equal(t, 2.0, mustEval(t, "min(4, 2)"))
	assert.Equal(t, 4.0, mustEval(t, "max(4, 2)"))

	assert.Equal(t, 6.0, mustEval(t, "max(1, 2) + 4"))
	assert.Equal(t, 8.0, mustEval(t, "4 + min(5, 4)"))
	assert.Equal(t, 29.0, mustEval(t, "7 + max(2, min(47.94, trunc(22.54)))"))
}

func Test_Evaluate_unknownFunction(t *testing.T) {
	_, err := Evaluate("bogus(1)")
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, UnknownFunction, ee.Kind)
}

func Test_EvaluateExpr_equalityRejected(t *testing.T) {
	eq, err := ParseEquation("1=1")
	require.NoError(t, err)
	_, err = EvaluateExpr(eq)
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, EqualityInEval, ee.Kind)
}

func Test_Evaluate_equalsIsInvalidToken(t *testing.T) {
	_, err := Evaluate("1=1")
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ParseFailure, ee.Kind)
}

func Test_Evaluate_unboundVariable(t *testing.T) {
	_, err := Evaluate("3X^2")
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, UnboundVariable, ee.Kind)
}

func Test_Evaluate_parseFailurePropagates(t *testing.T) {
	_, err := Evaluate("2+@")
	require.Error(t, err)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ParseFailure, ee.Kind)
}

func Test_Round(t *testing.T) {
	assert.Equal(t, 11.0, Round(10.99, 0))
	assert.Equal(t, 123.0, Round(123.456, 0))
	assert.Equal(t, -11.0, Round(-10.99, 0))
	assert.Equal(t, -123.0, Round(-123.456, 0))
	assert.Equal(t, 3.14, Round(3.14159, 2))
	assert.Equal(t, 1.2346, Round(1.2345678, 4))
	assert.Equal(t, -3.14, Round(-3.14159, 2))
	assert.Equal(t, -1.2346, Round(-1.2345678, 4))
	assert.Equal(t, 0.0, Round(0, 3))
	assert.Equal(t, 100000.0, Round(99999.999, 0))
	assert.Equal(t, 9876543.210988, Round(9876543.210987654, 6))
}
