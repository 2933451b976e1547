package cmd

import (
	"fmt"
	"os"

	"nemo/api/experiment"
	"nemo/util"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Display the recorded state of the experiment in this directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			lockFile := expandPath(viper.GetString("lock-file"))

			exp, err := experiment.Status()
			if err != nil {
				fmt.Printf("\nNo experiment has been recorded for this directory\n\n")
				util.PrintExperimentLock(os.Stdout, lockFile, experiment.Locked(experiment.WithLockFile(lockFile)))

				return nil
			}

			util.PrintTableOfExperiments(os.Stdout, *exp)
			util.PrintTableOfNodes(os.Stdout, exp.Spec.Nodes...)
			util.PrintExperimentLock(os.Stdout, lockFile, experiment.Locked(experiment.WithLockFile(lockFile)))

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(newStatusCmd())
}
