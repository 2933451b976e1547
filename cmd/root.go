package cmd

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"nemo/internal/common"
	"nemo/store"
	"nemo/util"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	persistBase     string
	containerPrefix string
	lockFile        string
	manifestFile    string
	storeEndpoint   string
	errFile         string
)

var rootCmd = &cobra.Command{
	Use:   "nemo",
	Short: "A cli application for container-based network emulation experiments",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		common.PersistBase = viper.GetString("persist-dir")
		common.ContainerPrefix = viper.GetString("container-prefix")

		var (
			endpoint = viper.GetString("store.endpoint")
			errFile  = viper.GetString("log.error-file")
			errOut   = viper.GetBool("log.error-stderr")
		)

		if err := store.Init(store.Endpoint(endpoint)); err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}

		if err := util.InitFatalLogWriter(errFile, errOut); err != nil {
			return fmt.Errorf("Unable to initialize fatal log writer: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		util.CloseLogWriter()
		store.Close()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage: true, // don't print help when subcommands return an error
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&persistBase, "persist-dir", common.PersistBase, "base directory for per-node persistent workspaces")
	rootCmd.PersistentFlags().StringVar(&containerPrefix, "container-prefix", common.ContainerPrefix, "prefix of the container names the compose file declares")
	rootCmd.PersistentFlags().StringVar(&manifestFile, "manifest", common.DefaultManifest, "node manifest location")
	rootCmd.PersistentFlags().Bool("log.error-stderr", false, "log fatal errors to STDERR")

	uid, home := getCurrentUserInfo()

	if uid == "0" {
		os.MkdirAll("/etc/nemo", 0755)
		os.MkdirAll("/var/log/nemo", 0755)

		rootCmd.PersistentFlags().StringVar(&lockFile, "lock-file", common.DefaultLockFile, "experiment lock file location")
		rootCmd.PersistentFlags().StringVar(&storeEndpoint, "store.endpoint", "bolt:///etc/nemo/store.bdb", "endpoint for storage service")
		rootCmd.PersistentFlags().StringVar(&errFile, "log.error-file", "/var/log/nemo/error.log", "log fatal errors to file")
	} else {
		rootCmd.PersistentFlags().StringVar(&lockFile, "lock-file", fmt.Sprintf("%s/.nemo.lock", home), "experiment lock file location")
		rootCmd.PersistentFlags().StringVar(&storeEndpoint, "store.endpoint", fmt.Sprintf("bolt://%s/.nemo.bdb", home), "endpoint for storage service")
		rootCmd.PersistentFlags().StringVar(&errFile, "log.error-file", fmt.Sprintf("%s/.nemo.err", home), "log fatal errors to file")
	}

	viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetConfigName("config")

	// Config paths - first look in current directory, then home directory (if
	// discoverable), then finally global config directory.
	viper.AddConfigPath(".")

	uid, home := getCurrentUserInfo()

	// The default config path added below is the same config path that should be
	// used for the root user, so don't worry about handling uid = 0 here.
	if uid != "0" {
		viper.AddConfigPath(home + "/.config/nemo")
	}

	viper.AddConfigPath("/etc/nemo")

	viper.SetEnvPrefix("NEMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func getCurrentUserInfo() (string, string) {
	u, err := user.Current()
	if err != nil {
		panic("unable to determine current user: " + err.Error())
	}

	var (
		uid  = u.Uid
		home = u.HomeDir
		sudo = os.Getenv("SUDO_USER")
	)

	// Only trust `SUDO_USER` env variable if we're currently running as root and,
	// if set, use it to lookup the actual user that ran the sudo command.
	if u.Uid == "0" && sudo != "" {
		u, err := user.Lookup(sudo)
		if err != nil {
			panic("unable to lookup sudo user: " + err.Error())
		}

		// `uid` and `home` will now reflect the user ID and home directory of the
		// actual user that ran the sudo command.
		uid = u.Uid
		home = u.HomeDir
	}

	return uid, home
}
