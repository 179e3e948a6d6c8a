package history

import (
	"testing"

	"github.com/dekarrin/symcalc/internal/symexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRoundTrip(t *testing.T, source string) symexpr.Expr {
	t.Helper()
	expr, err := symexpr.Parse(source)
	require.NoError(t, err)

	data := EncodeAST(expr)
	decoded, err := DecodeAST(data)
	require.NoError(t, err)
	return decoded
}

func Test_EncodeDecodeAST_number(t *testing.T) {
	decoded := mustRoundTrip(t, "42")
	assert.Equal(t, "42", decoded.String())
}

func Test_EncodeDecodeAST_binOp(t *testing.T) {
	decoded := mustRoundTrip(t, "3+4*2")
	assert.Equal(t, "(3+(4*2))", decoded.String())
}

func Test_EncodeDecodeAST_unaryMinus(t *testing.T) {
	decoded := mustRoundTrip(t, "-(3+4)")
	assert.Equal(t, "-((3+4))", decoded.String())
}

func Test_EncodeDecodeAST_function(t *testing.T) {
	decoded := mustRoundTrip(t, "sqrt(9)")
	assert.Equal(t, "sqrt(9)", decoded.String())
}

func Test_EncodeDecodeAST_monomial(t *testing.T) {
	expr, err := symexpr.Parse("3x^2")
	require.NoError(t, err)

	data := EncodeAST(expr)
	decoded, err := DecodeAST(data)
	require.NoError(t, err)
	assert.Equal(t, expr.String(), decoded.String())
}

func Test_DecodeAST_malformed(t *testing.T) {
	_, err := DecodeAST([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}
