package transforms

import (
	goerrors "errors"
	"testing"

	"github.com/go-sif/sketchfn"
	errors "github.com/go-sif/sketchfn/errors"
	"github.com/stretchr/testify/require"
)

func requireCloneIsEquivalent(t *testing.T, fn sketchfn.TransformFunction, input []interface{}) {
	clone := fn.StatelessClone()
	require.True(t, clone.Descriptor().Equal(fn.Descriptor()))
	expected, err := fn.Transform(input)
	require.NoError(t, err)
	actual, err := clone.Transform(input)
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func TestExampleTransform(t *testing.T) {
	fn := Example()
	out, err := fn.Transform([]interface{}{"a", 5})
	require.NoError(t, err)
	require.Equal(t, []interface{}{"a5 transformed"}, out)

	// no state is retained between calls
	out, err = fn.Transform([]interface{}{"a", 5})
	require.NoError(t, err)
	require.Equal(t, []interface{}{"a5 transformed"}, out)

	require.Equal(t, "(any, any) -> (string)", fn.Descriptor().String())
	requireCloneIsEquivalent(t, fn, []interface{}{"b", 7})
}

func TestProject(t *testing.T) {
	fn := Project(2, 0)
	out, err := fn.Transform([]interface{}{"x", "y", 3})
	require.NoError(t, err)
	require.Equal(t, []interface{}{3, "x"}, out)
	require.Len(t, fn.Descriptor().Inputs(), 3)
	requireCloneIsEquivalent(t, fn, []interface{}{1, 2, 3})

	_, err = fn.Transform([]interface{}{"x"})
	var serr errors.ShapeMismatchError
	require.True(t, goerrors.As(err, &serr))
	require.Equal(t, 2, serr.Index)
	require.Equal(t, 1, serr.Width)
}

func TestIdentity(t *testing.T) {
	input := []interface{}{"a", 1, nil}
	out, err := Identity(3).Transform(input)
	require.NoError(t, err)
	require.Equal(t, input, out)
	out[0] = "changed"
	require.Equal(t, "a", input[0])
}

func TestExtractJSON(t *testing.T) {
	fn := ExtractJSON("user.name", "count", "missing")
	out, err := fn.Transform([]interface{}{`{"user": {"name": "ada"}, "count": 3}`})
	require.NoError(t, err)
	require.Equal(t, []interface{}{"ada", 3.0, nil}, out)

	out, err = fn.Transform([]interface{}{[]byte(`{"count": 1}`)})
	require.NoError(t, err)
	require.Equal(t, []interface{}{nil, 1.0, nil}, out)

	_, err = fn.Transform([]interface{}{`{"broken"`})
	require.Error(t, err)
	_, err = fn.Transform([]interface{}{42})
	require.Error(t, err)
	_, err = fn.Transform(nil)
	require.Error(t, err)

	requireCloneIsEquivalent(t, fn, []interface{}{`{"count": 2}`})
}

func TestEncodeJSON(t *testing.T) {
	fn := EncodeJSON(3)
	out, err := fn.Transform([]interface{}{"a", 5, true})
	require.NoError(t, err)
	require.Equal(t, []interface{}{`["a",5,true]`}, out)
	requireCloneIsEquivalent(t, fn, []interface{}{1, 2, 3})
}

func TestHash64(t *testing.T) {
	fn := Hash64(2)
	a, err := fn.Transform([]interface{}{"a", 5})
	require.NoError(t, err)
	b, err := fn.Transform([]interface{}{"a", 5})
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := fn.Transform([]interface{}{"a5", ""})
	require.NoError(t, err)
	require.NotEqual(t, a, c)
	requireCloneIsEquivalent(t, fn, []interface{}{"x", "y"})
}
