package repline

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DirectReader_skipsBlankLines(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\n\n  first  \nsecond\n"))

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func Test_DirectReader_allowsBlank(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\nsecond\n"))
	r.AllowBlank(true)

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func Test_DirectReader_Close(t *testing.T) {
	r := NewDirectReader(strings.NewReader(""))
	assert.NoError(t, r.Close())
}
