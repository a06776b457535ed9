package model

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nlpodyssey/openai-agents-go/modelsettings"
	"github.com/openai/openai-go/v2/packages/param"
)

// ParseSettings converts a sampling option mapping into model settings.
// Unknown keys and out of range values are errors
func ParseSettings(options map[string]any) (modelsettings.ModelSettings, error) {
	var settings modelsettings.ModelSettings

	for key, raw := range options {
		switch key {
		case OptionTemperature:
			v, err := toFloat(raw)
			if err != nil {
				return settings, fmt.Errorf("option %s: %w", key, err)
			}
			if v < 0 || v > 2 {
				return settings, fmt.Errorf("option %s: %v out of range [0, 2]", key, v)
			}
			settings.Temperature = param.NewOpt(v)

		case OptionTopP:
			v, err := toFloat(raw)
			if err != nil {
				return settings, fmt.Errorf("option %s: %w", key, err)
			}
			if v < 0 || v > 1 {
				return settings, fmt.Errorf("option %s: %v out of range [0, 1]", key, v)
			}
			settings.TopP = param.NewOpt(v)

		case OptionMaxTokens:
			v, err := toFloat(raw)
			if err != nil {
				return settings, fmt.Errorf("option %s: %w", key, err)
			}
			if v < 1 || v != math.Trunc(v) {
				return settings, fmt.Errorf("option %s: must be a positive integer, got %v", key, raw)
			}
			settings.MaxTokens = param.NewOpt(int64(v))

		default:
			return settings, fmt.Errorf("unrecognized model option %q", key)
		}
	}

	return settings, nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}
