package nodeinit

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"nemo/internal/common"
)

// command is swapped in tests so fan-out behavior can be exercised without
// a container runtime.
var command = exec.Command

// DockerExec launches initializers with `docker exec` into the node's
// containers.
type DockerExec struct{}

// FanOut submits both initializers for every node except the control node.
// Launches are independent: a node whose containers are unreachable gets
// the failure recorded in its own log file and handle, and the remaining
// nodes still launch. The context is intentionally not bound to the child
// processes, which must outlive the start phase.
func (this DockerExec) FanOut(_ context.Context, nodes []string, startInstant string) []Launch {
	var launches []Launch

	for _, node := range nodes {
		if node == common.ControlNode {
			continue
		}

		launches = append(launches,
			this.launch(node, RoleNet, startInstant),
			this.launch(node, RoleBiz, startInstant),
		)
	}

	return launches
}

func (this DockerExec) launch(node string, role Role, startInstant string) Launch {
	l := Launch{Node: node, Role: role}

	logPath := filepath.Join(common.NodeLogDir(node), role.LogFile())

	logFile, err := os.Create(logPath)
	if err != nil {
		l.Err = fmt.Errorf("creating %s log for node %s: %w", role, node, err)
		return l
	}

	// The environment argument is empty: node environments are baked into
	// the container images at build time.
	script := fmt.Sprintf("%s/%s/%s %s %s '' '%s'",
		common.ExperimentMount, node, role.Script(),
		common.ExperimentMount, node, startInstant,
	)

	cmd := command("docker", "exec", role.Container(node), "bash", "-c", script)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(logFile, "failed to launch %s initializer: %v\n", role.Script(), err)
		logFile.Close()

		l.Err = fmt.Errorf("launching %s initializer for node %s: %w", role, node, err)
		return l
	}

	l.wait = func() error {
		defer logFile.Close()
		return cmd.Wait()
	}

	return l
}
