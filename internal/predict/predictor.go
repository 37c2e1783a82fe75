package predict

import (
	"fmt"
	"log/slog"
	"math"

	"stocksight/internal/domain"
)

// windowSize is the fixed sequence length the models were trained on.
const windowSize = 50

// targetColumn is the position of the next-close target in the scaled
// feature row. The training pipeline fits the scaler so that column 0
// inverse-transforms onto the close price scale.
const targetColumn = 0

// Predictor produces next-day price predictions from engineered features.
type Predictor struct {
	registry *Registry
	log      *slog.Logger
}

// NewPredictor creates a Predictor over the given artifact registry.
func NewPredictor(registry *Registry) *Predictor {
	return &Predictor{
		registry: registry,
		log:      slog.Default().With("component", "predict"),
	}
}

// Predict returns the model's next-day price for the ticker, or the last
// close when no artifact exists or inference fails. Failures are logged and
// never propagated. An empty feature sequence yields the zero Prediction,
// which the dashboard renders as N/A.
func (p *Predictor) Predict(ticker string, features []domain.FeatureRow) domain.Prediction {
	if len(features) == 0 {
		return domain.Prediction{}
	}

	fallback := domain.Prediction{
		Price:  round2(features[len(features)-1].Close),
		Source: domain.SourceFallbackLastClose,
	}

	if !p.registry.Has(ticker) {
		return fallback
	}

	price, err := p.infer(ticker, features)
	if err != nil {
		p.log.Warn("inference failed, using last close", "ticker", ticker, "err", err)
		return fallback
	}
	return domain.Prediction{Price: price, Source: domain.SourceModel}
}

func (p *Predictor) infer(ticker string, features []domain.FeatureRow) (float64, error) {
	model, scaler, err := p.registry.Load(ticker)
	if err != nil {
		return 0, err
	}

	scaled, err := scaler.Transform(featureMatrix(features))
	if err != nil {
		return 0, err
	}

	out, err := model.Forward(window(scaled, windowSize))
	if err != nil {
		return 0, err
	}

	// Place the scaled output in the target column of an otherwise zero row
	// and inverse-transform to recover the price.
	full := make([]float64, scaler.Width())
	full[targetColumn] = out
	inv, err := scaler.InverseRow(full)
	if err != nil {
		return 0, err
	}

	price := round2(inv[targetColumn])
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("non-finite prediction %v", price)
	}
	return price, nil
}

// featureMatrix extracts the model's seven input columns from each row, in
// the fixed order the artifacts were trained with.
func featureMatrix(features []domain.FeatureRow) [][]float64 {
	m := make([][]float64, len(features))
	for i, f := range features {
		m[i] = []float64{f.MA10, f.MA50, f.PctChange, f.Volatility, f.News, f.Social, f.Trend}
	}
	return m
}

// window shapes the scaled matrix to exactly size rows: longer inputs keep
// the most recent rows, shorter inputs are left-padded by repeating the
// earliest row. Edge-padding synthesizes the missing history without
// inventing a trend.
func window(rows [][]float64, size int) [][]float64 {
	if len(rows) >= size {
		return rows[len(rows)-size:]
	}

	out := make([][]float64, size)
	pad := size - len(rows)
	for i := 0; i < pad; i++ {
		out[i] = rows[0]
	}
	copy(out[pad:], rows)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
