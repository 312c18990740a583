package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfnirs/snirf/container"
)

func TestScalarConversions(t *testing.T) {
	s, ok := container.String("abc").AsString()
	require.True(t, ok)
	assert.Equal(t, "abc", s)

	i, ok := container.Int(7).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	// integral floats narrow to int, non-integral ones do not
	i, ok = container.Float(3).AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(3), i)
	_, ok = container.Float(3.5).AsInt()
	assert.False(t, ok)

	// ints widen to float
	f, ok := container.Int(2).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 2.0, f)

	// cross-kind access fails
	_, ok = container.String("abc").AsInt()
	assert.False(t, ok)
	_, ok = container.Int(7).AsString()
	assert.False(t, ok)
}

func TestMatrixRoundTrip(t *testing.T) {
	v := container.FloatMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []int{2, 3}, v.Dims)

	m, ok := v.AsFloatMatrix()
	require.True(t, ok)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m)

	_, ok = v.AsFloatArray()
	assert.False(t, ok)

	// inconsistent dims are rejected
	bad := container.FloatMatrix(2, 3, []float64{1, 2, 3})
	_, ok = bad.AsFloatMatrix()
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "float[][]", container.KindFloatMatrix.String())
	assert.Equal(t, "string", container.KindString.String())
}
