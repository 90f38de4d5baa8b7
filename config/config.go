// Package config loads the analysis plan: which analyses to run and
// their options, from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// AnalysisConfig names one analysis to run together with its options.
// Options are opaque here; each analysis interprets its own.
type AnalysisConfig struct {
	ID      string                 `yaml:"id"`
	Options map[string]interface{} `yaml:"options,omitempty"`
}

// BoolOption reads a boolean option, falling back to def when absent
// or not a boolean.
func (c AnalysisConfig) BoolOption(key string, def bool) bool {
	if v, ok := c.Options[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Plan is an ordered list of analyses. Order matters: the dead code
// detector consumes the results of the two dataflow analyses, so they
// must come first.
type Plan struct {
	Analyses []AnalysisConfig `yaml:"analyses"`
}

// Has reports whether the plan includes the analysis with the given id.
func (p Plan) Has(id string) bool {
	for _, a := range p.Analyses {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Get returns the configuration of the analysis with the given id.
func (p Plan) Get(id string) (AnalysisConfig, bool) {
	for _, a := range p.Analyses {
		if a.ID == id {
			return a, true
		}
	}
	return AnalysisConfig{}, false
}

// DefaultPlan runs everything: both dataflow analyses and the dead
// code detector on top of them.
func DefaultPlan() Plan {
	return Plan{Analyses: []AnalysisConfig{
		{ID: "constprop"},
		{ID: "livevars"},
		{ID: "deadcode"},
	}}
}

// ParsePlan decodes a plan from YAML text.
func ParsePlan(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return Plan{}, fmt.Errorf("parsing analysis plan: %w", err)
	}
	if len(p.Analyses) == 0 {
		return Plan{}, fmt.Errorf("analysis plan lists no analyses")
	}
	for _, a := range p.Analyses {
		if a.ID == "" {
			return Plan{}, fmt.Errorf("analysis plan entry without an id")
		}
	}
	return p, nil
}

// LoadPlan reads a plan from path.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, err
	}
	p, err := ParsePlan(data)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
