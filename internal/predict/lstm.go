package predict

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LSTMModel holds the exported weights of a single-layer LSTM with a scalar
// dense head, the artifact format the training pipeline writes per ticker.
// Gate order follows the usual convention: input (i), forget (f), candidate
// (g), output (o). Each W is [hidden][input], each U is [hidden][hidden],
// each B is [hidden].
type LSTMModel struct {
	InputSize  int `json:"input_size"`
	HiddenSize int `json:"hidden_size"`

	WI [][]float64 `json:"w_i"`
	WF [][]float64 `json:"w_f"`
	WG [][]float64 `json:"w_g"`
	WO [][]float64 `json:"w_o"`

	UI [][]float64 `json:"u_i"`
	UF [][]float64 `json:"u_f"`
	UG [][]float64 `json:"u_g"`
	UO [][]float64 `json:"u_o"`

	BI []float64 `json:"b_i"`
	BF []float64 `json:"b_f"`
	BG []float64 `json:"b_g"`
	BO []float64 `json:"b_o"`

	DenseW []float64 `json:"dense_w"`
	DenseB float64   `json:"dense_b"`
}

// loadModel reads and validates a model artifact.
func loadModel(path string) (*LSTMModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m LSTMModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding model %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &m, nil
}

func (m *LSTMModel) validate() error {
	if m.InputSize <= 0 || m.HiddenSize <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", m.InputSize, m.HiddenSize)
	}
	for name, w := range map[string][][]float64{"w_i": m.WI, "w_f": m.WF, "w_g": m.WG, "w_o": m.WO} {
		if err := checkMatrix(w, m.HiddenSize, m.InputSize); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for name, u := range map[string][][]float64{"u_i": m.UI, "u_f": m.UF, "u_g": m.UG, "u_o": m.UO} {
		if err := checkMatrix(u, m.HiddenSize, m.HiddenSize); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for name, b := range map[string][]float64{"b_i": m.BI, "b_f": m.BF, "b_g": m.BG, "b_o": m.BO, "dense_w": m.DenseW} {
		if len(b) != m.HiddenSize {
			return fmt.Errorf("%s: length %d, want %d", name, len(b), m.HiddenSize)
		}
	}
	return nil
}

func checkMatrix(m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return fmt.Errorf("%d rows, want %d", len(m), rows)
	}
	for i, r := range m {
		if len(r) != cols {
			return fmt.Errorf("row %d has %d cols, want %d", i, len(r), cols)
		}
	}
	return nil
}

// Forward runs the LSTM over the scaled window and returns the scalar
// output of the dense head, the model's scaled next-close estimate.
func (m *LSTMModel) Forward(window [][]float64) (float64, error) {
	if len(window) == 0 {
		return 0, fmt.Errorf("empty input window")
	}
	for i, row := range window {
		if len(row) != m.InputSize {
			return 0, fmt.Errorf("step %d has width %d, want %d", i, len(row), m.InputSize)
		}
	}

	h := make([]float64, m.HiddenSize)
	c := make([]float64, m.HiddenSize)
	next := make([]float64, m.HiddenSize)

	for _, x := range window {
		// All gates at a timestep read the previous hidden state, so the
		// new state is staged in next and swapped in afterwards.
		for j := 0; j < m.HiddenSize; j++ {
			i := sigmoid(dot(m.WI[j], x) + dot(m.UI[j], h) + m.BI[j])
			f := sigmoid(dot(m.WF[j], x) + dot(m.UF[j], h) + m.BF[j])
			g := math.Tanh(dot(m.WG[j], x) + dot(m.UG[j], h) + m.BG[j])
			o := sigmoid(dot(m.WO[j], x) + dot(m.UO[j], h) + m.BO[j])

			c[j] = f*c[j] + i*g
			next[j] = o * math.Tanh(c[j])
		}
		h, next = next, h
	}

	return dot(m.DenseW, h) + m.DenseB, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
