// Package compose wraps bring-up and tear-down of the container group
// backing an experiment. The group definition is a docker-compose file; the
// driver treats the compose operation as opaque, capturing its diagnostics
// on failure and never retrying.
package compose

import (
	"context"
	"errors"
	"fmt"
)

// ErrComposeFileMissing indicates the group definition artifact does not
// exist. It is checked before the compose command is invoked so it is never
// conflated with a container operation failure.
var ErrComposeFileMissing = errors.New("compose file missing")

type Driver interface {
	Up(context.Context, string) error
	Down(context.Context, string) error
}

var DefaultDriver Driver = new(Docker)

func Up(ctx context.Context, file string) error {
	return DefaultDriver.Up(ctx, file)
}

func Down(ctx context.Context, file string) error {
	return DefaultDriver.Down(ctx, file)
}

// OpError is a failed container group operation along with the diagnostic
// output captured from the external command, relayed verbatim to the
// operator.
type OpError struct {
	Op          string
	Diagnostics string
	Err         error
}

func (this OpError) Error() string {
	return fmt.Sprintf("docker compose %s failed: %v", this.Op, this.Err)
}

func (this OpError) Unwrap() error {
	return this.Err
}
