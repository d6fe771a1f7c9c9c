package dialogue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixed defaults matching the deployed classroom behavior. A tuning file may
// override them, but deployments are expected to run with these values.
const (
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultTopK        = 3
)

// Tuning holds the generation and retrieval constants for one deployment
type Tuning struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	TopK        int     `yaml:"top_k"`
}

// DefaultTuning returns the fixed deployment defaults
func DefaultTuning() Tuning {
	return Tuning{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		TopK:        DefaultTopK,
	}
}

// LoadTuning reads an optional YAML tuning file. An empty path or a missing
// file yields the defaults; a present but unparseable file is an error so a
// typo cannot silently change deployed behavior. Unset fields fall back to
// their defaults.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tuning, nil
		}
		return Tuning{}, fmt.Errorf("reading tuning file %s: %w", path, err)
	}

	var loaded Tuning
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Tuning{}, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}

	if loaded.Model != "" {
		tuning.Model = loaded.Model
	}
	if loaded.Temperature > 0 {
		tuning.Temperature = loaded.Temperature
	}
	if loaded.TopK > 0 {
		tuning.TopK = loaded.TopK
	}

	return tuning, nil
}
