package minirt

import (
	"os"
	"path/filepath"

	"github.com/goplus/minirt"
	"github.com/goplus/minirt/evaltest"
	"github.com/goplus/minirt/internal/project"
	"github.com/goplus/minirt/toolchain"
	"github.com/spf13/cobra"
)

// RootOptions holds the flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Arm64   bool   // overrides arm64 of the project file when set
	Config  string // project file, default: minirt.json or minirt.yaml if present
}

// NewRootCommand creates the minirt command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "minirt",
		Short:         "Runtime and test driver for programs emitted by the course compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				minirt.SetDebug(minirt.DbgFlagAll)
				project.SetDebug(project.DbgFlagAll)
				toolchain.SetDebug(toolchain.DbgFlagAll)
				evaltest.SetDebug(evaltest.DbgFlagAll)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print verbose information")
	cmd.PersistentFlags().BoolVar(&opts.Arm64, "arm64", false, "build for x86-64 on an arm64 host")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "project file (json or yaml)")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewHeaderCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewEchoCommand(opts))
	return cmd
}

var defaultConfigFiles = []string{"minirt.json", "minirt.yaml", "minirt.yml"}

func (p *RootOptions) loadConfig() (conf *project.Config, err error) {
	if conf, err = p.findConfig(); err != nil {
		return
	}
	if p.Arm64 {
		conf.Arm64 = true
	}
	return
}

func (p *RootOptions) findConfig() (*project.Config, error) {
	if p.Config != "" {
		return project.LoadConfig(p.Config)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	for _, name := range defaultConfigFiles {
		file := filepath.Join(dir, name)
		if _, err := os.Stat(file); err == nil {
			return project.LoadConfig(file)
		}
	}
	return project.DefaultConfig(dir), nil
}
