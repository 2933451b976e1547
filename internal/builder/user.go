package builder

import (
	"context"
	"encoding/json"
	"fmt"

	"nemo/util/shell"
)

const builderCmd = "nemo-build"

// UserBuilder shells out to the external `nemo-build` executable, passing
// the request as JSON on stdin. For builds, the executable reports the
// resolved node identifiers as a JSON array on stdout.
type UserBuilder struct{}

func (this UserBuilder) Build(ctx context.Context, req BuildRequest) ([]string, error) {
	stdOut, err := this.run(ctx, "build", req)
	if err != nil {
		return nil, err
	}

	var nodes []string

	if err := json.Unmarshal(stdOut, &nodes); err != nil {
		return nil, fmt.Errorf("parsing node list from config builder: %w", err)
	}

	return nodes, nil
}

func (this UserBuilder) Clean(ctx context.Context, req CleanRequest) error {
	_, err := this.run(ctx, "clean", req)
	return err
}

func (this UserBuilder) run(ctx context.Context, action string, req interface{}) ([]byte, error) {
	if !shell.CommandExists(builderCmd) {
		return nil, fmt.Errorf("%s does not exist in your path: %w", builderCmd, ErrBuilderNotFound)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request to JSON: %w", action, err)
	}

	opts := []shell.Option{
		shell.Command(builderCmd),
		shell.Args(action),
		shell.Stdin(data),
	}

	stdOut, stdErr, err := shell.ExecCommand(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("config builder %s failed: %s: %w", action, stdErr, err)
	}

	return stdOut, nil
}
