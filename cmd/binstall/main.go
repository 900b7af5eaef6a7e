package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aexvir/binstall/diag"
	"github.com/aexvir/binstall/task"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// the pipeline already reported the failure reason
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "binstall [packages...]",
		Short:   "provision cargo-binstall and install cargo packages on build agents",
		Version: version,
		Long: `binstall makes sure the cargo-binstall helper is present on the build
agent, downloading the archive published for the host platform when it is
not, and then delegates installation of the requested packages to it.

Packages can be passed as arguments, via --packages, or through the
BINSTALL_PACKAGES environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			packages := viper.GetString("packages")
			if packages == "" {
				packages = strings.Join(args, " ")
			}

			tsk, err := task.New(task.Config{
				Packages:       packages,
				Home:           viper.GetString("home"),
				TempDir:        viper.GetString("temp_dir"),
				RequireVersion: viper.GetString("require_version"),
				Timeout:        viper.GetDuration("timeout"),
				Log:            diag.New(viper.GetBool("verbose")),
			})
			if err != nil {
				return err
			}

			return tsk.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("packages", "", "delimited list of packages to install")
	flags.String("home", "", "home directory holding .cargo/bin (defaults to the current user's)")
	flags.String("temp-dir", "", "directory to stage downloaded archives in (defaults to the system temp dir)")
	flags.String("require-version", "", "minimum cargo-binstall version; older installs are replaced")
	flags.Duration("timeout", 0, "bound the whole run; 0 waits indefinitely")
	flags.Bool("verbose", false, "emit diagnostic debug lines")

	viper.SetEnvPrefix("BINSTALL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, name := range []string{"packages", "home", "temp-dir", "require-version", "timeout", "verbose"} {
		key := strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	return cmd
}
