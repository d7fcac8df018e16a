package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the rendering settings document. Fields absent from
// the file keep their defaults.
type Settings struct {
	// TargetWidth scales the output so its width matches this value,
	// preserving aspect ratio. 0 keeps the background's native size.
	TargetWidth int `yaml:"target_width"`

	MeshColor [3]float64 `yaml:"mesh_color"` // linear RGB, 0..1
	MeshAlpha float64    `yaml:"mesh_alpha"` // blend over the background

	Ambient        float64    `yaml:"ambient"`
	Diffuse        float64    `yaml:"diffuse"`
	LightDirection [3]float64 `yaml:"light_direction"` // camera space

	BackfaceCull bool `yaml:"backface_cull"`
}

// DefaultSettings returns the settings used when no settings file is
// given.
func DefaultSettings() Settings {
	return Settings{
		TargetWidth:    640,
		MeshColor:      [3]float64{0.75, 0.75, 0.75},
		MeshAlpha:      1.0,
		Ambient:        0.3,
		Diffuse:        0.7,
		LightDirection: [3]float64{0, 0, -1},
		BackfaceCull:   false,
	}
}

// LoadSettings reads a YAML settings document from path, overlaying it
// on the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading render settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}
