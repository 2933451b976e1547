package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nemo/api/experiment"
	"nemo/internal/common"
	"nemo/internal/compose"
	"nemo/internal/hostexec"
	"nemo/util"
	"nemo/util/sigterm"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBuildCmd() *cobra.Command {
	desc := `Build the experiment configuration

  Delegates generation of all experiment configuration files to the
  external config builder and records the resolved node set in the
  manifest. Additional configuration files can be passed as arguments;
  when none are given, experiment.cfg in the current directory is used.`

	cmd := &cobra.Command{
		Use:   "build [/path/to/config ...]",
		Short: "Build the experiment configuration",
		Long:  desc,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := util.WithWarnings(sigterm.CancelContext(context.Background()))

			opts := append(commonOpts(),
				experiment.WithConfigFiles(args...),
				experiment.WithForce(MustGetBool(cmd.Flags(), "force")),
				experiment.WithIncludeFilters(MustGetStringSlice(cmd.Flags(), "include")...),
				experiment.WithExcludeFilters(MustGetStringSlice(cmd.Flags(), "exclude")...),
			)

			count, err := experiment.Build(ctx, opts...)
			if err != nil {
				err := util.HumanizeError(err, "Unable to build the experiment configuration")
				return err.Humanized()
			}

			printWarnings(ctx)

			fmt.Printf("The experiment configuration was built for %d nodes\n", count)

			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Build even if a lock file is present")
	cmd.Flags().StringSlice("include", nil, "Glob pattern of nodes to include (may be repeated)")
	cmd.Flags().StringSlice("exclude", nil, "Glob pattern of nodes to exclude (may be repeated)")

	return cmd
}

func newStartCmd() *cobra.Command {
	desc := `Start the experiment

  Brings the container group up, records the lock file, prepares the
  host environment, and fans the per-node initializers out with a
  shared start instant placed scenario-delay seconds in the future.`

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the experiment",
		Long:  desc,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := util.WithWarnings(sigterm.CancelContext(context.Background()))

			opts := append(commonOpts(),
				experiment.WithEnvFile(MustGetString(cmd.Flags(), "environment")),
				experiment.WithComposeFile(MustGetString(cmd.Flags(), "compose-file")),
				experiment.WithScenarioDelay(MustGetInt(cmd.Flags(), "scenario-delay")),
				experiment.WithForce(MustGetBool(cmd.Flags(), "force")),
			)

			if err := experiment.Start(ctx, opts...); err != nil {
				printDiagnostics(err)

				err := util.HumanizeError(err, "Unable to start the experiment")
				return err.Humanized()
			}

			printWarnings(ctx)

			fmt.Println("The experiment was started")

			return nil
		},
	}

	cmd.Flags().StringP("environment", "e", "", "Environment file passed to the privileged host scripts (optional)")
	cmd.Flags().String("compose-file", common.DefaultComposeFile, "Container group compose file")
	cmd.Flags().Int("scenario-delay", common.DefaultScenarioDelay, "Seconds in the future to place the synchronized start instant")
	cmd.Flags().Bool("force", false, "Start even if a lock file is present")

	return cmd
}

func newStopCmd() *cobra.Command {
	desc := `Stop the experiment

  Tears the container group down, removes the lock file, releases the
  host environment, and restores the kernel real-time scheduling
  budget. With --force a container teardown failure is reported as a
  warning and the remaining steps still run.`

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the experiment",
		Long:  desc,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := util.WithWarnings(sigterm.CancelContext(context.Background()))

			opts := append(commonOpts(),
				experiment.WithEnvFile(MustGetString(cmd.Flags(), "environment")),
				experiment.WithComposeFile(MustGetString(cmd.Flags(), "compose-file")),
				experiment.WithForce(MustGetBool(cmd.Flags(), "force")),
			)

			if err := experiment.Stop(ctx, opts...); err != nil {
				printDiagnostics(err)

				err := util.HumanizeError(err, "Unable to stop the experiment")
				return err.Humanized()
			}

			printWarnings(ctx)

			fmt.Println("The experiment was stopped")

			return nil
		},
	}

	cmd.Flags().StringP("environment", "e", "", "Environment file passed to the privileged host scripts (optional)")
	cmd.Flags().String("compose-file", common.DefaultComposeFile, "Container group compose file")
	cmd.Flags().Bool("force", false, "Keep stopping past container teardown failures")

	return cmd
}

func newCleanCmd() *cobra.Command {
	desc := `Clean the experiment

  Removes persisted node workspaces and delegates configuration
  artifact cleanup to the external config builder. With --include or
  --exclude filters only the matching nodes are cleaned and the
  remaining nodes are recorded back into the manifest.`

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the experiment",
		Long:  desc,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := util.WithWarnings(sigterm.CancelContext(context.Background()))

			opts := append(commonOpts(),
				experiment.WithForce(MustGetBool(cmd.Flags(), "force")),
				experiment.WithIncludeFilters(MustGetStringSlice(cmd.Flags(), "include")...),
				experiment.WithExcludeFilters(MustGetStringSlice(cmd.Flags(), "exclude")...),
			)

			if err := experiment.Clean(ctx, opts...); err != nil {
				err := util.HumanizeError(err, "Unable to clean the experiment")
				return err.Humanized()
			}

			printWarnings(ctx)

			fmt.Println("The experiment was cleaned")

			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Clean even if a lock file is present")
	cmd.Flags().StringSlice("include", nil, "Glob pattern of nodes to include (may be repeated)")
	cmd.Flags().StringSlice("exclude", nil, "Glob pattern of nodes to exclude (may be repeated)")

	return cmd
}

// commonOpts gathers the persistent flag values every lifecycle phase needs.
func commonOpts() []experiment.Option {
	return []experiment.Option{
		experiment.WithLockFile(expandPath(viper.GetString("lock-file"))),
		experiment.WithManifest(expandPath(viper.GetString("manifest"))),
	}
}

func expandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}

	return expanded
}

func printWarnings(ctx context.Context) {
	warns := util.Warnings(ctx)
	if warns == nil {
		return
	}

	printer := color.New(color.FgYellow)

	for _, warn := range warns {
		printer.Printf("[WARNING] %v\n", warn)
	}
}

// printDiagnostics surfaces captured stderr from failed container group or
// host script invocations so the operator sees the underlying tool's output.
func printDiagnostics(err error) {
	var (
		opErr   *compose.OpError
		stepErr *hostexec.StepError
	)

	switch {
	case errors.As(err, &opErr):
		if opErr.Diagnostics != "" {
			fmt.Fprintln(os.Stderr, opErr.Diagnostics)
		}
	case errors.As(err, &stepErr):
		if stepErr.Diagnostics != "" {
			fmt.Fprintln(os.Stderr, stepErr.Diagnostics)
		}
	}
}

func init() {
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newCleanCmd())
}
