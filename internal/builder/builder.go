// Package builder is the controller's view of the external configuration
// builder: the tool that parses experiment configuration, resolves the node
// manifest, and emits per-node configuration artifacts. The controller only
// consumes the node identifiers it resolves; templating and artifact
// generation live entirely on the other side of this boundary.
package builder

import (
	"context"
	"errors"
)

// ErrBuilderNotFound indicates the external builder executable is not in
// the PATH.
var ErrBuilderNotFound = errors.New("config builder not found")

type BuildRequest struct {
	ConfigFiles    []string `json:"configFiles"`
	IncludeFilters []string `json:"includeFilters,omitempty"`
	ExcludeFilters []string `json:"excludeFilters,omitempty"`
	Manifest       string   `json:"manifest"`
}

type CleanRequest struct {
	Nodes    []string `json:"nodes,omitempty"`
	Manifest string   `json:"manifest"`
}

type Builder interface {
	// Build resolves and emits all per-node configuration, returning the
	// identifiers of the resolved nodes.
	Build(context.Context, BuildRequest) ([]string, error)

	// Clean removes the configuration artifacts the builder generated for
	// the given nodes (all artifacts when the node list is empty).
	Clean(context.Context, CleanRequest) error
}

var DefaultBuilder Builder = new(UserBuilder)

func Build(ctx context.Context, req BuildRequest) ([]string, error) {
	return DefaultBuilder.Build(ctx, req)
}

func Clean(ctx context.Context, req CleanRequest) error {
	return DefaultBuilder.Clean(ctx, req)
}
