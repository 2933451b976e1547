package types

import (
	"fmt"

	"github.com/activeshadow/structs"
	"github.com/mitchellh/mapstructure"
)

type Configs []Config

// Config is the envelope stored for an experiment: opaque spec/status maps
// plus naming metadata. Spec describes what the operator asked for, Status
// what is currently running.
type Config struct {
	Kind     string                 `json:"kind" yaml:"kind"`
	Metadata ConfigMetadata         `json:"metadata" yaml:"metadata"`
	Spec     map[string]interface{} `json:"spec" yaml:"spec"`
	Status   map[string]interface{} `json:"status,omitempty" yaml:"status,omitempty"`
}

type ConfigMetadata struct {
	Name    string `json:"name" yaml:"name"`
	Created string `json:"created" yaml:"created"`
	Updated string `json:"updated" yaml:"updated"`
}

func NewConfig(name string) *Config {
	return &Config{
		Kind: "Experiment",
		Metadata: ConfigMetadata{
			Name: name,
		},
	}
}

type Experiment struct {
	Metadata ConfigMetadata    `json:"metadata" yaml:"metadata"`
	Spec     *ExperimentSpec   `json:"spec" yaml:"spec"`
	Status   *ExperimentStatus `json:"status" yaml:"status"`
}

type ExperimentSpec struct {
	ExperimentName string   `json:"experimentName" yaml:"experimentName" structs:"experimentName" mapstructure:"experimentName"`
	WorkDir        string   `json:"workDir" yaml:"workDir" structs:"workDir" mapstructure:"workDir"`
	ComposeFile    string   `json:"composeFile" yaml:"composeFile" structs:"composeFile" mapstructure:"composeFile"`
	EnvFile        string   `json:"envFile" yaml:"envFile" structs:"envFile" mapstructure:"envFile"`
	ScenarioDelay  int      `json:"scenarioDelay" yaml:"scenarioDelay" structs:"scenarioDelay" mapstructure:"scenarioDelay"`
	Nodes          []string `json:"nodes" yaml:"nodes" structs:"nodes" mapstructure:"nodes"`
}

type ExperimentStatus struct {
	// StartTime is the synchronized start instant of the current run,
	// empty when the experiment is stopped.
	StartTime string   `json:"startTime" yaml:"startTime" structs:"startTime" mapstructure:"startTime"`
	Nodes     []string `json:"nodes" yaml:"nodes" structs:"nodes" mapstructure:"nodes"`
}

func (this ExperimentStatus) Running() bool {
	return this.StartTime != ""
}

// DecodeExperiment converts a stored config envelope into typed spec and
// status structs.
func DecodeExperiment(c *Config) (*Experiment, error) {
	spec := new(ExperimentSpec)

	if err := mapstructure.Decode(c.Spec, spec); err != nil {
		return nil, fmt.Errorf("decoding experiment spec: %w", err)
	}

	status := new(ExperimentStatus)

	if err := mapstructure.Decode(c.Status, status); err != nil {
		return nil, fmt.Errorf("decoding experiment status: %w", err)
	}

	return &Experiment{Metadata: c.Metadata, Spec: spec, Status: status}, nil
}

func (this Experiment) WriteToConfig(c *Config) {
	c.Metadata = this.Metadata

	if this.Spec != nil {
		c.Spec = structs.MapDefaultCase(this.Spec, structs.CASESNAKE)
	}

	if this.Status == nil {
		c.Status = nil
	} else {
		c.Status = structs.MapDefaultCase(this.Status, structs.CASESNAKE)
	}
}
