package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sky-flux/irt"
)

// CalibrationInput is the YAML input of the mstep command. Exactly one of
// Estimates and Responses is used; Estimates wins when both are given.
type CalibrationInput struct {
	Items      []irt.ModelSpec `yaml:"items" validate:"required,min=1"`
	Quadrature QuadratureInput `yaml:"quadrature"`
	Estimates  *irt.Estimates  `yaml:"estimates" validate:"required_without=Responses"`
	Responses  [][]int         `yaml:"responses" validate:"required_without=Estimates"`
}

// QuadratureInput selects either an evenly spaced normal quadrature
// (Points, Min, Max) or explicit Theta and Densities.
type QuadratureInput struct {
	Points    int       `yaml:"points" validate:"required_without=Theta,omitempty,gte=2"`
	Min       float64   `yaml:"min"`
	Max       float64   `yaml:"max"`
	Theta     []float64 `yaml:"theta" validate:"required_without=Points"`
	Densities []float64 `yaml:"densities" validate:"required_with=Theta"`
}

// Distribution builds the latent distribution described by q.
func (q QuadratureInput) Distribution() (*irt.Distribution, error) {
	if len(q.Theta) > 0 {
		return irt.NewDistribution(q.Theta, q.Densities)
	}
	return irt.NewNormalQuadrature(q.Points, q.Min, q.Max)
}

// LoadInput reads and validates the calibration input at path.
func LoadInput(path string) (*CalibrationInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	in := &CalibrationInput{}
	if err := yaml.Unmarshal(data, in); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid input %s: %w", path, err)
	}
	return in, nil
}
