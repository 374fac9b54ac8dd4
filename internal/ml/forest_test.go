package ml

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// separable two-class training set: class 0 clusters near 0, class 1 near 10.
func separableData() ([][]float64, []int) {
	samples := [][]float64{
		{0.1, 0.2}, {0.3, 0.1}, {0.2, 0.4}, {0.5, 0.3}, {0.4, 0.2},
		{9.8, 10.1}, {10.2, 9.9}, {9.7, 10.3}, {10.1, 10.0}, {9.9, 9.8},
	}
	labels := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return samples, labels
}

func testConfig() ForestConfig {
	return ForestConfig{NumTrees: 25, MaxDepth: 5, Seed: 42}
}

func TestForestFitPredict(t *testing.T) {
	samples, labels := separableData()
	f, err := FitForest(testConfig(), samples, labels, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, f.Predict([]float64{0.2, 0.3}))
	assert.Equal(t, 1, f.Predict([]float64{10.0, 10.0}))
}

func TestForestProbaSumsToOne(t *testing.T) {
	samples, labels := separableData()
	f, err := FitForest(testConfig(), samples, labels, 2)
	require.NoError(t, err)

	for _, sample := range samples {
		probs := f.PredictProba(sample)
		require.Len(t, probs, 2)
		assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-9)
		for _, p := range probs {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestForestDeterministic(t *testing.T) {
	samples, labels := separableData()

	f1, err := FitForest(testConfig(), samples, labels, 2)
	require.NoError(t, err)
	f2, err := FitForest(testConfig(), samples, labels, 2)
	require.NoError(t, err)

	probe := []float64{5.0, 5.0}
	assert.Equal(t, f1.PredictProba(probe), f2.PredictProba(probe))
	assert.Equal(t, f1.Importances, f2.Importances)
}

func TestForestImportancesNormalized(t *testing.T) {
	samples, labels := separableData()
	f, err := FitForest(testConfig(), samples, labels, 2)
	require.NoError(t, err)

	require.Len(t, f.Importances, 2)
	assert.InDelta(t, 1.0, floats.Sum(f.Importances), 1e-9)
}

func TestForestValidation(t *testing.T) {
	samples, labels := separableData()

	_, err := FitForest(testConfig(), nil, nil, 2)
	require.Error(t, err)

	_, err = FitForest(testConfig(), samples, labels[:3], 2)
	require.Error(t, err)

	_, err = FitForest(testConfig(), samples, labels, 1)
	require.Error(t, err)

	bad := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 9}
	_, err = FitForest(testConfig(), samples, bad, 2)
	require.Error(t, err)

	cfg := testConfig()
	cfg.NumTrees = 0
	_, err = FitForest(cfg, samples, labels, 2)
	require.Error(t, err)
}

func TestForestGobRoundTrip(t *testing.T) {
	samples, labels := separableData()
	f, err := FitForest(testConfig(), samples, labels, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(f))

	var restored RandomForest
	require.NoError(t, gob.NewDecoder(&buf).Decode(&restored))

	probe := []float64{0.2, 0.1}
	assert.Equal(t, f.PredictProba(probe), restored.PredictProba(probe))
	assert.Equal(t, f.Importances, restored.Importances)
}
