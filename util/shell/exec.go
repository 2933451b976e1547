package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

type shell struct{}

func (shell) CommandExists(cmd string) bool {
	err := exec.Command("which", cmd).Run()
	return err == nil
}

func (shell) ExecCommand(ctx context.Context, opts ...Option) ([]byte, []byte, error) {
	o := NewOptions(opts...)

	var (
		stdIn  io.Reader
		stdOut bytes.Buffer
		stdErr bytes.Buffer
	)

	if o.Stdin == nil {
		stdIn = os.Stdin
	} else {
		stdIn = bytes.NewBuffer(o.Stdin)
	}

	cmd := exec.CommandContext(ctx, o.Cmd, o.Args...)
	cmd.Env = o.Env
	cmd.Stdin = stdIn
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	err := cmd.Run()

	return stdOut.Bytes(), stdErr.Bytes(), err
}
