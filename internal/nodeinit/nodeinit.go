// Package nodeinit fans initialization commands out into each node's
// containers. Launches are fire-and-forget: nodes self-coordinate around
// the synchronized start instant, so the start phase never waits on them.
// Each launch's output goes to a dedicated per-node, per-role log file
// under the node's persistent workspace.
package nodeinit

import (
	"context"

	"golang.org/x/sync/errgroup"

	"nemo/internal/common"
)

// Role identifies which of a node's two initializers a launch belongs to.
type Role string

const (
	// RoleNet is the network/emulation initializer.
	RoleNet Role = "net"
	// RoleBiz is the business-workload initializer.
	RoleBiz Role = "biz"
)

// Script is the initializer entrypoint inside the node's experiment mount.
func (this Role) Script() string {
	if this == RoleBiz {
		return "biz-init"
	}

	return "init"
}

// LogFile is the per-role log file name under the node's log directory,
// overwritten on each start.
func (this Role) LogFile() string {
	if this == RoleBiz {
		return "biz_init.log"
	}

	return "init.log"
}

// Container is the name of the node's container this role executes in.
func (this Role) Container(node string) string {
	return common.ContainerPrefix + "-" + node + "-" + string(this)
}

// Launch is the handle for one submitted initializer. Err is set when the
// launch itself could not be started; otherwise Wait blocks until the
// initializer exits. The start phase holds the handles but deliberately
// never waits on them.
type Launch struct {
	Node string
	Role Role
	Err  error

	wait func() error
}

func (this Launch) Wait() error {
	if this.Err != nil {
		return this.Err
	}

	return this.wait()
}

type Initiator interface {
	FanOut(ctx context.Context, nodes []string, startInstant string) []Launch
}

var DefaultInitiator Initiator = new(DockerExec)

func FanOut(ctx context.Context, nodes []string, startInstant string) []Launch {
	return DefaultInitiator.FanOut(ctx, nodes, startInstant)
}

// Drain waits for every successfully-started launch to exit, returning the
// first initializer error. Intended for diagnostics tooling; the lifecycle
// phases never call it.
func Drain(launches []Launch) error {
	var group errgroup.Group

	for _, l := range launches {
		if l.Err != nil {
			continue
		}

		l := l
		group.Go(l.Wait)
	}

	return group.Wait()
}
