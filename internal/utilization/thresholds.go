package utilization

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/schoolutil-cli/internal/model"
)

// LoadThresholds reads a standalone threshold override file. Keys omitted
// from the file keep their default cutoff.
//
//	thresholds:
//	  near: 0.85
//	  over: 1.00
//	  severe: 1.50
func LoadThresholds(path string) (model.Thresholds, error) {
	t := model.DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, eris.Wrapf(err, "utilization: read thresholds %s", path)
	}

	// The YAML has a top-level "thresholds" key.
	wrapper := struct {
		Thresholds model.Thresholds `yaml:"thresholds"`
	}{Thresholds: t}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return t, eris.Wrap(err, "utilization: parse thresholds")
	}

	t = wrapper.Thresholds
	if err := t.Validate(); err != nil {
		return t, eris.Wrap(err, "utilization: thresholds")
	}
	return t, nil
}
