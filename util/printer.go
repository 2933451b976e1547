package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nemo/internal/common"
	"nemo/internal/nodeinit"
	"nemo/types"

	"github.com/olekukonko/tablewriter"
)

// PrintTableOfExperiments writes the given experiments to the given writer
// as an ASCII table. The table headers are set to Name, Started, Nodes, and
// Compose File.
func PrintTableOfExperiments(writer io.Writer, exps ...types.Experiment) {
	table := tablewriter.NewWriter(writer)

	table.SetHeader([]string{"Name", "Started", "Nodes", "Compose File"})

	for _, exp := range exps {
		started := "stopped"
		if exp.Status != nil && exp.Status.StartTime != "" {
			started = exp.Status.StartTime
		}

		table.Append([]string{
			exp.Spec.ExperimentName,
			started,
			strings.Join(exp.Spec.Nodes, ", "),
			exp.Spec.ComposeFile,
		})
	}

	table.Render()
}

// PrintTableOfNodes writes the per-node workspace state to the given writer
// as an ASCII table: whether the persistent workspace and the two init logs
// exist on disk.
func PrintTableOfNodes(writer io.Writer, nodes ...string) {
	table := tablewriter.NewWriter(writer)

	table.SetHeader([]string{"Node", "Workspace", "Init Log", "Biz Init Log"})

	for _, node := range nodes {
		table.Append([]string{
			node,
			presence(common.NodeDir(node)),
			presence(filepath.Join(common.NodeLogDir(node), nodeinit.RoleNet.LogFile())),
			presence(filepath.Join(common.NodeLogDir(node), nodeinit.RoleBiz.LogFile())),
		})
	}

	table.Render()
}

func presence(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "present"
	}

	return "missing"
}

// PrintExperimentLock writes a one-line lock status for the experiment.
func PrintExperimentLock(writer io.Writer, path string, held bool) {
	if held {
		fmt.Fprintf(writer, "Lock: held (%s)\n", path)
	} else {
		fmt.Fprintf(writer, "Lock: free (%s)\n", path)
	}
}
