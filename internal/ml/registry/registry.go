package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"stockcast/internal/domain"
	"stockcast/internal/ml/models/seqreg"
	"stockcast/internal/ml/models/xgboost"
)

// Artifact file names under the model directory, written by cmd/train.
const (
	PriceArtifactFile  = "price_model.json"
	SignalArtifactFile = "signal_model.json"
)

// Models holds the loaded handles. A nil handle means the artifact failed
// to load at startup; adapters then fail fast with ErrModelUnavailable
// instead of attempting inference.
type Models struct {
	Price  *seqreg.Model
	Signal *xgboost.Model
}

// Load reads both artifacts from dir. Load failures are logged and leave
// the corresponding handle nil; the process still starts (degraded).
func Load(dir string) *Models {
	models := &Models{}

	price, err := LoadPriceModel(filepath.Join(dir, PriceArtifactFile))
	if err != nil {
		log.Printf("registry: %v", err)
	} else {
		models.Price = price
	}

	signal, err := LoadSignalModel(filepath.Join(dir, SignalArtifactFile))
	if err != nil {
		log.Printf("registry: %v", err)
	} else {
		models.Signal = signal
	}

	return models
}

// Loaded reports whether both handles are present.
func (m *Models) Loaded() bool {
	return m != nil && m.Price != nil && m.Signal != nil
}

func LoadPriceModel(path string) (*seqreg.Model, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read price artifact %s: %v", domain.ErrModelLoad, path, err)
	}
	model, err := seqreg.UnmarshalBinary(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: decode price artifact %s: %v", domain.ErrModelLoad, path, err)
	}
	return model, nil
}

func LoadSignalModel(path string) (*xgboost.Model, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read signal artifact %s: %v", domain.ErrModelLoad, path, err)
	}
	model, err := xgboost.UnmarshalBinary(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: decode signal artifact %s: %v", domain.ErrModelLoad, path, err)
	}
	return model, nil
}
