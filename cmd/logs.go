package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nemo/internal/common"
	"nemo/internal/nodeinit"
	"nemo/util"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	desc := `Display initializer logs for a node

  Prints the captured output of a node's initializer from its
  persistent workspace. The --role flag selects between the network
  initializer log (init) and the business logic initializer log (biz).`

	cmd := &cobra.Command{
		Use:   "logs <node>",
		Short: "Display initializer logs for a node",
		Long:  desc,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("Must provide a node name")
			}

			var (
				node   = args[0]
				follow = MustGetBool(cmd.Flags(), "follow")
			)

			role, err := roleFor(MustGetString(cmd.Flags(), "role"))
			if err != nil {
				return err
			}

			logFile := filepath.Join(common.NodeLogDir(node), role.LogFile())

			if !follow {
				f, err := os.Open(logFile)
				if err != nil {
					err := util.HumanizeError(err, "Unable to open the initializer log for node "+node)
					return err.Humanized()
				}

				defer f.Close()

				io.Copy(os.Stdout, f)

				return nil
			}

			t, err := tail.TailFile(logFile, tail.Config{Follow: true, ReOpen: true, Poll: true})
			if err != nil {
				err := util.HumanizeError(err, "Unable to follow the initializer log for node "+node)
				return err.Humanized()
			}

			for line := range t.Lines {
				fmt.Println(line.Text)
			}

			return nil
		},
	}

	cmd.Flags().String("role", "init", "Initializer log to display (init or biz)")
	cmd.Flags().BoolP("follow", "f", false, "Keep the log open and print new lines as they appear")

	return cmd
}

func roleFor(name string) (nodeinit.Role, error) {
	switch name {
	case "init":
		return nodeinit.RoleNet, nil
	case "biz":
		return nodeinit.RoleBiz, nil
	default:
		return "", fmt.Errorf("unknown initializer role %s (expected init or biz)", name)
	}
}

func init() {
	rootCmd.AddCommand(newLogsCmd())
}
