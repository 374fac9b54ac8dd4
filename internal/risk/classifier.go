package risk

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/ml"
	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

const (
	// MinTrainingRecords is the smallest corpus Train accepts.
	MinTrainingRecords = 5

	numClasses = 3
	numTrees   = 100
	maxDepth   = 10
	randomSeed = 42

	modelFile  = "risk_model.gob"
	scalerFile = "scaler.gob"
)

// Classifier predicts loan risk. It starts untrained and falls back to
// rule-based scoring until Train succeeds or a persisted model pair loads
// at construction. Not safe for concurrent use; the host application is
// single-user.
type Classifier struct {
	forest  *ml.RandomForest
	scaler  *ml.StandardScaler
	trained bool

	modelPath  string
	scalerPath string
}

// NewClassifier creates a classifier persisting its artifacts under
// modelDir. If both artifacts already exist and decode cleanly the
// classifier starts trained; any load failure downgrades to untrained.
func NewClassifier(modelDir string) *Classifier {
	c := &Classifier{
		scaler:     ml.NewStandardScaler(),
		modelPath:  filepath.Join(modelDir, modelFile),
		scalerPath: filepath.Join(modelDir, scalerFile),
	}
	c.loadModel()
	return c
}

// Trained reports whether predictions use the fitted model.
func (c *Classifier) Trained() bool {
	return c.trained
}

// Train fits the scaler and forest on the loan corpus, using existing
// risk labels as ground truth. Returns false without touching state when
// fewer than MinTrainingRecords loans are given or the fit fails. On
// success the fitted artifacts are persisted; persistence failure is
// logged but does not undo training.
func (c *Classifier) Train(loans []model.LoanRecord) bool {
	log := zap.L().With(zap.String("component", "risk_classifier"))

	if len(loans) < MinTrainingRecords {
		log.Warn("not enough data to train",
			zap.Int("loans", len(loans)),
			zap.Int("required", MinTrainingRecords))
		return false
	}

	samples := make([][]float64, len(loans))
	labels := make([]int, len(loans))
	for i, loan := range loans {
		samples[i] = Encode(loan).Slice()
		labels[i] = loan.RiskLabel.Ordinal()
	}

	scaler := ml.NewStandardScaler()
	scaled, err := scaler.FitTransform(samples)
	if err != nil {
		log.Error("scaler fit failed", zap.Error(err))
		return false
	}

	forest, err := ml.FitForest(ml.ForestConfig{
		NumTrees: numTrees,
		MaxDepth: maxDepth,
		Seed:     randomSeed,
	}, scaled, labels, numClasses)
	if err != nil {
		log.Error("forest fit failed", zap.Error(err))
		return false
	}

	c.scaler = scaler
	c.forest = forest
	c.trained = true

	if err := c.SaveModel(); err != nil {
		log.Warn("model persist failed", zap.Error(err))
	}

	log.Info("model trained", zap.Int("loans", len(loans)))
	return true
}

// Predict scores one loan. Untrained classifiers delegate to the
// rule-based fallback. Trained ones map the forest's predicted class
// ordinal and its probability into a 0-100 score:
// ordinal*33 + probability*33, clamped.
func (c *Classifier) Predict(loan model.LoanRecord) model.Prediction {
	if !c.trained {
		return ruleBasedPrediction(loan)
	}

	scaled := c.scaler.Transform(Encode(loan).Slice())
	probs := c.forest.PredictProba(scaled)

	ord := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[ord] {
			ord = i
		}
	}
	confidence := probs[ord]

	score := int(float64(ord)*33 + confidence*33)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return model.Prediction{
		Score:      score,
		Label:      model.LabelFromOrdinal(ord),
		Confidence: confidence,
		Method:     model.MethodRandomForest,
	}
}

// FeatureImportance returns the named, normalized feature importances of
// the fitted forest, or nil when untrained. Values sum to 1.
func (c *Classifier) FeatureImportance() map[string]float64 {
	if !c.trained {
		return nil
	}
	out := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		out[name] = c.forest.Importances[i]
	}
	return out
}

// SaveModel writes the fitted forest and scaler to their artifact paths.
func (c *Classifier) SaveModel() error {
	if !c.trained {
		return eris.New("risk: no trained model to save")
	}
	if err := os.MkdirAll(filepath.Dir(c.modelPath), 0o755); err != nil {
		return eris.Wrap(err, "risk: create model dir")
	}
	if err := writeGob(c.modelPath, c.forest); err != nil {
		return eris.Wrap(err, "risk: save model")
	}
	if err := writeGob(c.scalerPath, c.scaler); err != nil {
		return eris.Wrap(err, "risk: save scaler")
	}
	return nil
}

// loadModel restores a persisted forest and scaler pair. Missing or
// undecodable artifacts leave the classifier untrained; load failure is
// never fatal.
func (c *Classifier) loadModel() {
	log := zap.L().With(zap.String("component", "risk_classifier"))

	var forest ml.RandomForest
	if err := readGob(c.modelPath, &forest); err != nil {
		if !os.IsNotExist(eris.Cause(err)) {
			log.Warn("model load failed, using rule-based prediction", zap.Error(err))
		}
		return
	}

	var scaler ml.StandardScaler
	if err := readGob(c.scalerPath, &scaler); err != nil {
		log.Warn("scaler load failed, using rule-based prediction", zap.Error(err))
		return
	}

	c.forest = &forest
	c.scaler = &scaler
	c.trained = true
	log.Info("persisted model loaded", zap.String("path", c.modelPath))
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrapf(err, "encode %s", path)
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "open %s", path)
	}
	defer f.Close() //nolint:errcheck
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return eris.Wrapf(err, "decode %s", path)
	}
	return nil
}
