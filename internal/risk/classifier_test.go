package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// trainingCorpus yields loans with labels consistent with the rule
// thresholds so the forest has real signal to learn.
func trainingCorpus() []model.LoanRecord {
	mk := func(amount, income float64, pan string, label model.RiskLabel) model.LoanRecord {
		loan := model.LoanRecord{Amount: amount, PAN: pan, RiskLabel: label}
		if income > 0 {
			loan.AnnualIncome = &income
		}
		return loan
	}
	return []model.LoanRecord{
		mk(50000, 400000, "AAAPA1111A", model.RiskLow),
		mk(80000, 500000, "AAAPA2222B", model.RiskLow),
		mk(120000, 600000, "AAAPA3333C", model.RiskLow),
		mk(150000, 450000, "", model.RiskLow),
		mk(300000, 400000, "AAAPA4444D", model.RiskMedium),
		mk(350000, 350000, "", model.RiskMedium),
		mk(450000, 500000, "AAAPA5555E", model.RiskMedium),
		mk(700000, 300000, "", model.RiskHigh),
		mk(900000, 0, "", model.RiskHigh),
		mk(1200000, 400000, "AAAPA6666F", model.RiskHigh),
	}
}

func TestClassifierStartsUntrained(t *testing.T) {
	c := NewClassifier(t.TempDir())
	assert.False(t, c.Trained())
	assert.Nil(t, c.FeatureImportance())

	// Untrained prediction is the rule-based fallback.
	p := c.Predict(model.LoanRecord{Amount: 600000})
	assert.Equal(t, model.MethodRuleBased, p.Method)
	assert.Equal(t, 75, p.Score)
}

func TestClassifierTrainTooFewRecords(t *testing.T) {
	c := NewClassifier(t.TempDir())
	ok := c.Train(trainingCorpus()[:MinTrainingRecords-1])
	assert.False(t, ok)
	assert.False(t, c.Trained())

	// No artifacts written.
	_, err := os.Stat(c.modelPath)
	assert.True(t, os.IsNotExist(err))
}

func TestClassifierTrainAndPredict(t *testing.T) {
	c := NewClassifier(t.TempDir())
	require.True(t, c.Train(trainingCorpus()))
	require.True(t, c.Trained())

	for _, loan := range trainingCorpus() {
		p := c.Predict(loan)
		assert.Equal(t, model.MethodRandomForest, p.Method)
		assert.GreaterOrEqual(t, p.Score, 0)
		assert.LessOrEqual(t, p.Score, 100)
		assert.GreaterOrEqual(t, p.Confidence, 0.0)
		assert.LessOrEqual(t, p.Confidence, 1.0)
	}
}

func TestClassifierDeterministic(t *testing.T) {
	a := NewClassifier(t.TempDir())
	b := NewClassifier(t.TempDir())
	require.True(t, a.Train(trainingCorpus()))
	require.True(t, b.Train(trainingCorpus()))

	income := 500000.0
	probe := model.LoanRecord{Amount: 420000, AnnualIncome: &income}
	assert.Equal(t, a.Predict(probe), b.Predict(probe))
	assert.Equal(t, a.FeatureImportance(), b.FeatureImportance())
}

func TestClassifierFeatureImportance(t *testing.T) {
	c := NewClassifier(t.TempDir())
	require.True(t, c.Train(trainingCorpus()))

	imp := c.FeatureImportance()
	require.Len(t, imp, FeatureCount)
	sum := 0.0
	for _, name := range FeatureNames {
		v, ok := imp[name]
		require.True(t, ok, "missing importance for %q", name)
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestClassifierPersistReload(t *testing.T) {
	dir := t.TempDir()
	c := NewClassifier(dir)
	require.True(t, c.Train(trainingCorpus()))

	// Train persisted both artifacts.
	_, err := os.Stat(filepath.Join(dir, modelFile))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, scalerFile))
	require.NoError(t, err)

	reloaded := NewClassifier(dir)
	require.True(t, reloaded.Trained())

	income := 350000.0
	probe := model.LoanRecord{Amount: 280000, AnnualIncome: &income, PAN: "AAAPA7777G"}
	assert.Equal(t, c.Predict(probe), reloaded.Predict(probe))
}

func TestClassifierCorruptArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, modelFile), []byte("not gob"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, scalerFile), []byte("not gob"), 0o644))

	c := NewClassifier(dir)
	assert.False(t, c.Trained())

	// Fallback still works after a failed load.
	p := c.Predict(model.LoanRecord{Amount: 100000})
	assert.Equal(t, model.MethodRuleBased, p.Method)
	assert.Equal(t, 25, p.Score)
}

func TestClassifierSaveUntrained(t *testing.T) {
	c := NewClassifier(t.TempDir())
	assert.Error(t, c.SaveModel())
}
