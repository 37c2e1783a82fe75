package predict

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Artifact filename conventions inside the model directory.
const (
	modelSuffix  = "_lstm.json"
	scalerSuffix = "_scaler.json"
)

// Registry is the immutable set of tickers with trained artifacts, built by
// scanning the artifact directory once at startup. A ticker is trained only
// when both its model and scaler files are present.
type Registry struct {
	dir     string
	trained map[string]bool
}

// NewRegistry scans dir for artifact pairs. A missing directory yields an
// empty registry, not an error: a deployment with no trained models still
// serves fallback predictions.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{dir: dir, trained: make(map[string]bool)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("scanning artifact dir %s: %w", dir, err)
	}

	models := make(map[string]bool)
	scalers := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, modelSuffix):
			models[strings.ToUpper(strings.TrimSuffix(name, modelSuffix))] = true
		case strings.HasSuffix(name, scalerSuffix):
			scalers[strings.ToUpper(strings.TrimSuffix(name, scalerSuffix))] = true
		}
	}
	for ticker := range models {
		if scalers[ticker] {
			r.trained[ticker] = true
		}
	}
	return r, nil
}

// Has reports whether the ticker has a trained artifact pair.
func (r *Registry) Has(ticker string) bool {
	return r.trained[strings.ToUpper(ticker)]
}

// Trained returns the sorted list of tickers with artifacts.
func (r *Registry) Trained() []string {
	out := make([]string, 0, len(r.trained))
	for t := range r.trained {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Load reads the model and scaler for a ticker. Artifacts are read per
// call; their lifetime is a single inference.
func (r *Registry) Load(ticker string) (*LSTMModel, *MinMaxScaler, error) {
	t := strings.ToUpper(ticker)
	if !r.trained[t] {
		return nil, nil, fmt.Errorf("no artifact for %s", t)
	}

	model, err := loadModel(filepath.Join(r.dir, t+modelSuffix))
	if err != nil {
		return nil, nil, err
	}
	scaler, err := loadScaler(filepath.Join(r.dir, t+scalerSuffix))
	if err != nil {
		return nil, nil, err
	}
	if scaler.Width() != model.InputSize {
		return nil, nil, fmt.Errorf("artifact mismatch for %s: scaler width %d, model input %d",
			t, scaler.Width(), model.InputSize)
	}
	return model, scaler, nil
}
