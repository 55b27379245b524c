package recommend

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed persona_weights.schema.json
var weightsSchema string

// LoadWeightTable reads a persona weight override file and merges it over the
// built-in defaults. Personas absent from the file keep their defaults. The
// file is schema-validated before use; every resulting weight vector must sum
// to 1.0.
func LoadWeightTable(path string) (WeightTable, error) {
	table := DefaultWeightTable()

	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("read weight overrides: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(weightsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return table, fmt.Errorf("validate weight overrides: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return table, fmt.Errorf("invalid weight overrides %s: %s", path, strings.Join(msgs, "; "))
	}

	var overrides struct {
		Base    *Weights `json:"base"`
		Fresh   *Weights `json:"fresh"`
		Switch  *Weights `json:"switch"`
		Retrain *Weights `json:"retrain"`
	}
	if err := json.Unmarshal(data, &overrides); err != nil {
		return table, fmt.Errorf("decode weight overrides: %w", err)
	}

	if overrides.Base != nil {
		table.Base = *overrides.Base
	}
	if overrides.Fresh != nil {
		table.Fresh = *overrides.Fresh
	}
	if overrides.Switch != nil {
		table.Switch = *overrides.Switch
	}
	if overrides.Retrain != nil {
		table.Retrain = *overrides.Retrain
	}

	if err := table.validate(); err != nil {
		return DefaultWeightTable(), err
	}
	return table, nil
}
