package nn_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticvec-ml/staticvec/internal/backend/cpu"
	"github.com/staticvec-ml/staticvec/internal/nn"
	"github.com/staticvec-ml/staticvec/internal/tensor"
	"github.com/staticvec-ml/staticvec/internal/vectors"
)

// fixtureRegistry returns a registry with a 5x4 table under "en" where
// table[r][c] == r*4 + c. Small integers keep float32 arithmetic exact.
func fixtureRegistry(t *testing.T) *vectors.Registry {
	t.Helper()

	data := make([]float32, 5*4)
	for i := range data {
		data[i] = float32(i)
	}
	table, err := vectors.FromSlice(data, 5, 4)
	require.NoError(t, err)

	reg := vectors.NewRegistry()
	reg.Register("en", table)
	return reg
}

func TestNewStaticVectors(t *testing.T) {
	reg := fixtureRegistry(t)

	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{DropFactor: 0.9})
	require.NoError(t, err)

	assert.Equal(t, "en", layer.Lang())
	assert.Equal(t, 3, layer.NO())
	assert.Equal(t, 4, layer.NM())
	assert.Equal(t, 5, layer.NV())
	assert.Equal(t, float32(0.9), layer.DropFactor())
	assert.NotEmpty(t, layer.Key())
	assert.True(t, layer.W().Tensor().Shape().Equal(tensor.Shape{3, 4}))
}

func TestNewStaticVectors_EmptyTable(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{5, 0}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	table, err := vectors.NewTable(raw)
	require.NoError(t, err)

	reg := vectors.NewRegistry()
	reg.Register("en", table)

	_, err = nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	assert.ErrorIs(t, err, nn.ErrNoVectors)
}

func TestNewStaticVectors_UnknownLang(t *testing.T) {
	reg := vectors.NewRegistry()

	_, err := nn.NewStaticVectors("xx", 3, reg, cpu.New(), nn.Config{})
	assert.ErrorIs(t, err, vectors.ErrNotFound)
}

func TestBeginUpdate_OutputShape(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	output, backprop, err := layer.BeginUpdate([]uint64{0, 1, 7}, 0)
	require.NoError(t, err)
	require.NotNil(t, backprop)

	assert.True(t, output.Shape().Equal(tensor.Shape{3, 3}))
}

// Out-of-vocabulary ids alias to row 0, so an OOV id projects identically to
// id 0, and the aliasing is stable across calls.
func TestBeginUpdate_OOVAliasesToRowZero(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	output, _, err := layer.BeginUpdate([]uint64{0, 1, 7}, 0)
	require.NoError(t, err)

	data := output.Data()
	nO := layer.NO()
	row := func(n int) []float32 { return data[n*nO : (n+1)*nO] }

	assert.Equal(t, row(0), row(2))
	assert.NotEqual(t, row(0), row(1))

	again, _, err := layer.BeginUpdate([]uint64{7}, 0)
	require.NoError(t, err)
	assert.Equal(t, row(0), again.Data())
}

func TestBackprop_OuterProduct(t *testing.T) {
	reg := fixtureRegistry(t)
	backend := cpu.New()
	layer, err := nn.NewStaticVectors("en", 3, reg, backend, nn.Config{})
	require.NoError(t, err)

	_, backprop, err := layer.BeginUpdate([]uint64{0, 1, 7}, 0)
	require.NoError(t, err)

	grads := tensor.Ones[float32](tensor.Shape{3, 3}, backend)
	backprop(grads, nil)

	// d_W[o][m] = sum over the batch of vectors[n][m]; the batch gathered
	// rows 0, 1 and 0 again, so each output row of d_W is row0 + row1 + row0.
	wantRow := []float32{4, 7, 10, 13}
	got := layer.W().FlatGrad()
	require.Len(t, got, 3*4)
	for o := 0; o < 3; o++ {
		assert.Equal(t, wantRow, got[o*4:(o+1)*4], "d_W row %d", o)
	}
}

// Gradients accumulate across backprop calls rather than being overwritten.
func TestBackprop_Accumulates(t *testing.T) {
	reg := fixtureRegistry(t)
	backend := cpu.New()
	layer, err := nn.NewStaticVectors("en", 2, reg, backend, nn.Config{})
	require.NoError(t, err)

	_, backprop, err := layer.BeginUpdate([]uint64{1, 2}, 0)
	require.NoError(t, err)

	grads := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	backprop(grads, nil)
	once := append([]float32(nil), layer.W().FlatGrad()...)

	backprop(grads, nil)
	twice := layer.W().FlatGrad()

	for i := range once {
		assert.Equal(t, 2*once[i], twice[i])
	}
}

func TestBackprop_OptimizerCallback(t *testing.T) {
	reg := fixtureRegistry(t)
	backend := cpu.New()
	layer, err := nn.NewStaticVectors("en", 2, reg, backend, nn.Config{})
	require.NoError(t, err)

	_, backprop, err := layer.BeginUpdate([]uint64{0, 3}, 0)
	require.NoError(t, err)

	var gotKey string
	var gotWeights, gotGrads []float32
	backprop(tensor.Ones[float32](tensor.Shape{2, 2}, backend), func(weights, grads []float32, key string) {
		gotKey = key
		gotWeights = weights
		gotGrads = grads
	})

	assert.Equal(t, layer.Key(), gotKey)
	require.Len(t, gotWeights, 2*4)
	require.Len(t, gotGrads, 2*4)

	// The callback receives the live parameter buffer, not a copy.
	gotWeights[0] = 123
	assert.Equal(t, float32(123), layer.W().Tensor().Data()[0])
}

// The table is re-resolved through the provider on every pass, so a swapped
// table takes effect immediately.
func TestBeginUpdate_HotSwap(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	before, _, err := layer.BeginUpdate([]uint64{1}, 0)
	require.NoError(t, err)

	swapped, err := vectors.FromSlice(make([]float32, 5*4), 5, 4)
	require.NoError(t, err)
	reg.Register("en", swapped)

	after, _, err := layer.BeginUpdate([]uint64{1}, 0)
	require.NoError(t, err)

	assert.NotEqual(t, before.Data(), after.Data())
	assert.Equal(t, []float32{0, 0, 0}, after.Data())
}

func TestForward_NoDropout(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	a, err := layer.Forward([]uint64{0, 1, 2})
	require.NoError(t, err)
	b, err := layer.Forward([]uint64{0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, a.Data(), b.Data())
}

// Dropout masks whole feature columns: with a [1, nO] mask, a column of the
// output is either zeroed everywhere or scaled by 1/(1-rate) everywhere.
func TestBeginUpdate_DropoutColumns(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 8, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	base, err := layer.Forward([]uint64{1, 2, 3})
	require.NoError(t, err)

	rate := float32(0.5)
	dropped, _, err := layer.BeginUpdate([]uint64{1, 2, 3}, rate)
	require.NoError(t, err)

	nO := layer.NO()
	for col := 0; col < nO; col++ {
		zeroed := dropped.Data()[col] == 0
		for row := 0; row < 3; row++ {
			got := dropped.Data()[row*nO+col]
			if zeroed {
				assert.Zero(t, got)
			} else {
				assert.InDelta(t, base.Data()[row*nO+col]/(1-rate), got, 1e-4)
			}
		}
	}
}

func TestParameters(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	params := layer.Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, "W", params[0].Name())
}

func TestVectors_ResolvesFresh(t *testing.T) {
	reg := fixtureRegistry(t)
	layer, err := nn.NewStaticVectors("en", 3, reg, cpu.New(), nn.Config{})
	require.NoError(t, err)

	first, err := layer.Vectors()
	require.NoError(t, err)

	swapped, err := vectors.FromSlice(make([]float32, 5*4), 5, 4)
	require.NoError(t, err)
	reg.Register("en", swapped)

	second, err := layer.Vectors()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Same(t, swapped, second)
}

func TestErrNoVectorsMessage(t *testing.T) {
	assert.True(t, errors.Is(nn.ErrNoVectors, nn.ErrNoVectors))
	assert.Contains(t, nn.ErrNoVectors.Error(), "dimension 0")
}
