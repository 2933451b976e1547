package builder

import (
	"fmt"
	"io/ioutil"
	"path"

	"gopkg.in/yaml.v3"
)

// Manifest is the persisted record of the node set a build resolved, plus
// any nodes a partial clean excluded (and therefore left in place).
type Manifest struct {
	Nodes    []string `yaml:"nodes"`
	Excluded []string `yaml:"excluded,omitempty"`
}

func ReadManifest(file string) (*Manifest, error) {
	body, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", file, err)
	}

	var m Manifest

	if err := yaml.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling manifest %s: %w", file, err)
	}

	return &m, nil
}

func (this Manifest) Write(file string) error {
	body, err := yaml.Marshal(this)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := ioutil.WriteFile(file, body, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", file, err)
	}

	return nil
}

// Resolve partitions the manifest's nodes against glob-style include and
// exclude filters. An empty include list matches every node; exclusion
// wins over inclusion.
func (this Manifest) Resolve(include, exclude []string) (included, excluded []string) {
	for _, node := range this.Nodes {
		switch {
		case matchAny(exclude, node):
			excluded = append(excluded, node)
		case len(include) == 0 || matchAny(include, node):
			included = append(included, node)
		default:
			excluded = append(excluded, node)
		}
	}

	return included, excluded
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}

	return false
}
