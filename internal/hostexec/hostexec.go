// Package hostexec invokes the privileged host-side operations an
// experiment needs around container bring-up: the `host/control` script
// (veth links, EEL generation, message broker, start signaling), the
// `host/bridge` script, and the kernel real-time scheduling budget.
//
// Prepare and Release are deliberately asymmetric: Release does not reverse
// the bridge/link setup because tearing the container group down already
// removes the network namespaces those links live in.
package hostexec

import (
	"context"
	"fmt"
	"path/filepath"

	"nemo/internal/common"
	"nemo/util/shell"
)

type Controller interface {
	Prepare(ctx context.Context, workDir, envFile, startInstant string) error
	Release(ctx context.Context, workDir, envFile string) error
}

var DefaultController Controller = new(controller)

func Prepare(ctx context.Context, workDir, envFile, startInstant string) error {
	return DefaultController.Prepare(ctx, workDir, envFile, startInstant)
}

func Release(ctx context.Context, workDir, envFile string) error {
	return DefaultController.Release(ctx, workDir, envFile)
}

// StepError names the privileged sub-step that failed, so partial
// completion of a prepare/release sequence is diagnosable.
type StepError struct {
	Step        string
	Diagnostics string
	Err         error
}

func (this StepError) Error() string {
	return fmt.Sprintf("host operation %s failed: %v", this.Step, this.Err)
}

func (this StepError) Unwrap() error {
	return this.Err
}

type controller struct{}

// Prepare runs the host-side start sequence, strictly in order: control
// prestart, bridge activation, real-time budget relaxation, control start.
// The first failing sub-step aborts the sequence; completed sub-steps are
// not rolled back.
func (this controller) Prepare(ctx context.Context, workDir, envFile, startInstant string) error {
	if err := sudo(ctx, "control prestart", controlScript(), "prestart", workDir, envFile, startInstant); err != nil {
		return err
	}

	if err := sudo(ctx, "bridge start", bridgeScript(), "start"); err != nil {
		return err
	}

	if err := RelaxRTSched(ctx); err != nil {
		return err
	}

	return sudo(ctx, "control start", controlScript(), "start", workDir, envFile, startInstant)
}

// Release runs the inverse start-signal step. Restoring the real-time
// budget is sequenced by the stop phase so it happens even when this step
// fails; bridge/link teardown is intentionally absent (see package doc).
func (this controller) Release(ctx context.Context, workDir, envFile string) error {
	return sudo(ctx, "control stop", controlScript(), "stop", workDir, envFile)
}

func sudo(ctx context.Context, step string, args ...string) error {
	_, stdErr, err := shell.ExecCommand(ctx, shell.Command("sudo"), shell.Args(args...))
	if err != nil {
		return &StepError{Step: step, Diagnostics: string(stdErr), Err: err}
	}

	return nil
}

func controlScript() string {
	return filepath.Join(common.HostDir, "control")
}

func bridgeScript() string {
	return filepath.Join(common.HostDir, "bridge")
}
