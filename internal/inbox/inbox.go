// Package inbox receives configuration messages from a companion app.
//
// A message is a small JSON or YAML document dropped into a file. The only
// field understood today is the vibration intensity (pulse length in
// milliseconds). Anything absent or malformed is ignored, so callers only
// ever see valid values.
package inbox

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xonecas/tactus/internal/constants"
	yaml "go.yaml.in/yaml/v3"
)

// Keys accepted for the vibration intensity field. "1" is the numeric key
// used by watch-side message dictionaries.
var intensityKeys = []string{"vibe_duration", "vibration_intensity", "1"}

// Parse extracts the vibration intensity from a message. The format is picked
// from the file extension of name: .yaml and .yml are YAML, anything else JSON.
func Parse(name string, data []byte) (int, bool) {
	fields, err := decode(name, data)
	if err != nil {
		return 0, false
	}

	for _, k := range intensityKeys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		return intensity(v)
	}
	return 0, false
}

func decode(name string, data []byte) (map[string]any, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".yaml" || ext == ".yml" {
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
		return raw, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return raw, nil
}

func intensity(v any) (int, bool) {
	var n int
	switch x := v.(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		n = i
	case int:
		n = x
	case float64:
		if x != math.Trunc(x) || x > constants.MaxIntensity {
			return 0, false
		}
		n = int(x)
	default:
		return 0, false
	}

	if n < 1 || n > constants.MaxIntensity {
		return 0, false
	}
	return n, true
}
