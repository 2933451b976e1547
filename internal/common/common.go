package common

import "path/filepath"

// Settings shared across packages, populated from viper-bound flags in the
// root command before any subcommand runs.
var (
	// PersistBase is the directory tree holding per-node runtime state,
	// logs, and scratch space. Laid out as persist/<node>/var/{run,log,tmp}.
	PersistBase = "persist"

	// HostDir holds the host-side artifacts: the compose file and the
	// privileged control/bridge scripts.
	HostDir = "host"

	// ControlNode is the coordinator entry in the node manifest. It is not
	// a workload participant and is skipped during fan-out initialization.
	ControlNode = "host"

	// ContainerPrefix is prepended to node names to form the container
	// names the compose file declares.
	ContainerPrefix = "nemo"

	// ExperimentMount is the path the experiment directory is mounted at
	// inside every node container.
	ExperimentMount = "/experiment"
)

const (
	DefaultComposeFile   = "host/docker-compose.yml"
	DefaultLockFile      = "/var/run/lock/nemo.lock"
	DefaultManifest      = "manifest.yml"
	DefaultScenarioDelay = 40
)

// NodeDir is the persistent workspace for a node. It outlives any single
// container process and is only removed by the clean phase.
func NodeDir(node string) string {
	return filepath.Join(PersistBase, node)
}

func NodeLogDir(node string) string {
	return filepath.Join(NodeDir(node), "var", "log")
}
