package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderModels lists the model ids tried per provider, newest first.
type ProviderModels struct {
	Gemini    []string `yaml:"gemini"`
	Groq      []string `yaml:"groq"`
	Anthropic []string `yaml:"anthropic"`
}

func DefaultProviderModels() ProviderModels {
	return ProviderModels{
		Gemini: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gemini-2.0-flash",
			"gemini-flash-latest",
			"gemini-pro-latest",
			"gemini-1.5-flash",
			"gemini-1.5-pro",
			"gemini-pro",
		},
		Groq: []string{
			"llama-3.1-8b-instant",
			"llama-3.1-70b-versatile",
			"llama-3-8b-8192",
			"mixtral-8x7b-32768",
		},
		Anthropic: []string{
			"claude-3-5-haiku-latest",
			"claude-sonnet-4-5",
		},
	}
}

// LoadProviderModels overlays the lists in the YAML file at path onto base.
// Lists missing from the file keep their base value. An empty path returns base.
func LoadProviderModels(path string, base ProviderModels) (ProviderModels, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read provider models file: %w", err)
	}

	var overlay ProviderModels
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return base, fmt.Errorf("parse provider models file %s: %w", path, err)
	}

	if len(overlay.Gemini) > 0 {
		base.Gemini = overlay.Gemini
	}
	if len(overlay.Groq) > 0 {
		base.Groq = overlay.Groq
	}
	if len(overlay.Anthropic) > 0 {
		base.Anthropic = overlay.Anthropic
	}
	return base, nil
}
