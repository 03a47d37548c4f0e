package transport_test

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"lagrangian_transport/src/transport"
)

const separableText = `# three plants, three markets
3 3

100 150 200
120 130 200
10 20 30
40 50 60
70 80 90
`

func TestParseProblem(t *testing.T) {
	inst, err := transport.ParseProblem(strings.NewReader(separableText))
	require.NoError(t, err)

	want := separableCosts(t)
	assert.Equal(t, want.NumSources, inst.NumSources)
	assert.Equal(t, want.NumDestinations, inst.NumDestinations)
	assert.True(t, mat.Equal(want.Costs, inst.Costs))
	assert.True(t, mat.Equal(want.Supply, inst.Supply))
	assert.True(t, mat.Equal(want.Demand, inst.Demand))
}

func TestParseProblem_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty input", "", io.ErrUnexpectedEOF},
		{"zero sources", "0 2\n\n1 1\n", transport.ErrEmptyProblem},
		{"short supply", "2 1\n5\n5\n1\n1\n", transport.ErrShapeMismatch},
		{"long demand", "1 1\n5\n5 1\n1\n", transport.ErrShapeMismatch},
		{"missing cost row", "2 1\n5 5\n10\n1\n", io.ErrUnexpectedEOF},
		{"negative demand", "1 1\n5\n-5\n1\n", transport.ErrNegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := transport.ParseProblem(strings.NewReader(tt.input))
			assert.Nil(t, inst)
			assert.True(t, errors.Is(err, tt.want), "want %v, got %v", tt.want, err)
		})
	}

	for _, input := range []string{
		"1 1 1\n5\n5\n1\n",
		"one 1\n5\n5\n1\n",
		"1 1\n5\nfive\n1\n",
		"1 1\n5\n5\n1\n7\n",
	} {
		_, err := transport.ParseProblem(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestWriteInstance_RoundTrip(t *testing.T) {
	inst := mustProblem(t,
		[][]float64{{0.5, 2}, {3, 1e-3}},
		[]float64{7.25, 10},
		[]float64{10, 7.25},
	)

	var buf bytes.Buffer
	require.NoError(t, inst.WriteInstance(&buf))
	assert.Equal(t, "2 2\n7.25 10\n10 7.25\n0.5 2\n3 0.001\n", buf.String())

	again, err := transport.ParseProblem(&buf)
	require.NoError(t, err)
	assert.True(t, mat.Equal(inst.Costs, again.Costs))
	assert.True(t, mat.Equal(inst.Supply, again.Supply))
	assert.True(t, mat.Equal(inst.Demand, again.Demand))
}

func TestWriteInstance_RoundTripWideRows(t *testing.T) {
	const numDest = 20000
	costs := make([]float64, numDest)
	demand := make([]float64, numDest)
	for j := range costs {
		costs[j] = float64(100 + j%900)
		demand[j] = 1
	}
	inst := mustProblem(t, [][]float64{costs}, []float64{numDest}, demand)

	var buf bytes.Buffer
	require.NoError(t, inst.WriteInstance(&buf))
	// The cost row alone is 4 bytes per destination.
	require.Greater(t, 4*numDest, bufio.MaxScanTokenSize)

	again, err := transport.ParseProblem(&buf)
	require.NoError(t, err)
	assert.Equal(t, numDest, again.NumDestinations)
	assert.True(t, mat.Equal(inst.Costs, again.Costs))
	assert.True(t, mat.Equal(inst.Demand, again.Demand))
}

func TestLoadProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "separable.txt")
	require.NoError(t, os.WriteFile(path, []byte(separableText), 0o644))

	inst, err := transport.LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, 450.0, inst.TotalDemand())

	_, err = transport.LoadProblem(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}
