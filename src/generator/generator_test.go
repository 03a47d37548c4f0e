package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTransportation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, dims := range [][2]int{{1, 1}, {3, 7}, {10, 4}} {
		inst, err := GenerateTransportation(rng, dims[0], dims[1], 25, 40)
		require.NoError(t, err)

		assert.Equal(t, dims[0], inst.NumSources)
		assert.Equal(t, dims[1], inst.NumDestinations)
		assert.Equal(t, inst.TotalSupply(), inst.TotalDemand(), "instance must be balanced")

		for i := range inst.NumSources {
			assert.GreaterOrEqual(t, inst.Supply.AtVec(i), 1.0)
			assert.LessOrEqual(t, inst.Supply.AtVec(i), 40.0)
			for _, c := range inst.Costs.RawRowView(i) {
				assert.GreaterOrEqual(t, c, 1.0)
				assert.LessOrEqual(t, c, 25.0)
			}
		}
	}
}

func TestGenerateTransportation_Seeded(t *testing.T) {
	a, err := GenerateTransportation(rand.New(rand.NewSource(9)), 4, 5, 10, 10)
	require.NoError(t, err)
	b, err := GenerateTransportation(rand.New(rand.NewSource(9)), 4, 5, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())

	sol, err := a.SolveExact()
	require.NoError(t, err)
	assert.True(t, a.IsFeasible(sol.Flow))
}
