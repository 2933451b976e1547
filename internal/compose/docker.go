package compose

import (
	"context"
	"fmt"
	"os"

	"nemo/util/shell"
)

// Docker drives the container group with `docker compose`.
type Docker struct{}

func (this Docker) Up(ctx context.Context, file string) error {
	if err := requireFile(file); err != nil {
		return err
	}

	return this.run(ctx, "up", file, "compose", "-f", file, "up", "-d")
}

func (this Docker) Down(ctx context.Context, file string) error {
	if err := requireFile(file); err != nil {
		return err
	}

	return this.run(ctx, "down", file, "compose", "-f", file, "down")
}

func (this Docker) run(ctx context.Context, op, file string, args ...string) error {
	_, stdErr, err := shell.ExecCommand(ctx, shell.Command("docker"), shell.Args(args...))
	if err != nil {
		return &OpError{Op: op, Diagnostics: string(stdErr), Err: err}
	}

	return nil
}

func requireFile(file string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", file, ErrComposeFileMissing)
	} else if err != nil {
		return fmt.Errorf("checking compose file %s: %w", file, err)
	}

	return nil
}
