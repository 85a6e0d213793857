package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollis/appshell/internal/config"
	"github.com/hollis/appshell/internal/sidecar"
)

var version = "dev"

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GlobalFlags holds persistent flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
	Mode       string
}

func buildRoot() *cobra.Command {
	flags := &GlobalFlags{}
	root := createRootCommand(flags)
	root.AddCommand(
		createRunCommand(flags),
		createDoctorCommand(flags),
		createVersionCommand(),
	)
	return root
}

// createRootCommand creates the root command. Running the binary with no
// subcommand boots the shell, matching desktop launcher expectations.
func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "appshell",
		Short: "Desktop shell bootstrap for the bundled backend",
		Long: `Appshell is the desktop-shell bootstrap for the application. In release
mode it spawns the bundled backend executable as a managed child process and
keeps its handle for the life of the shell. In development mode the backend
dev server is started by the operator instead.

Examples:
  appshell                              # boot the shell (build-tag default mode)
  appshell --mode=release               # force the release bootstrap branch
  appshell doctor --config=appshell.toml  # verify the backend resolves`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	root.PersistentFlags().StringVar(&flags.Mode, "mode", "", "bootstrap mode: development or release (defaults to build configuration)")
	return root
}

// createRunCommand creates the explicit run subcommand; same behavior as the
// bare root command.
func createRunCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Boot the shell and supervise the backend sidecar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(flags)
		},
	}
}

// createDoctorCommand creates the doctor subcommand: a resolve-only dry run.
func createDoctorCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the bundled backend executable can be resolved",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return err
			}
			spec, err := cfg.SidecarSpec()
			if err != nil {
				return err
			}
			var path string
			if spec.BundleDir != "" {
				path, err = sidecar.ResolveIn(spec.BundleDir, spec.Name)
			} else {
				path, err = sidecar.Resolve(spec.Name)
			}
			if err != nil {
				return err
			}
			cmd.Printf("backend resolved: %s\n", path)
			return nil
		},
	}
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the appshell version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("appshell " + version)
		},
	}
}
