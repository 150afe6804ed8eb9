package minirt

import (
	"os"

	"github.com/goplus/minirt/abi"
	"github.com/goplus/minirt/toolchain"
	"github.com/spf13/cobra"
)

func NewBuildCommand(root *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the runtime as a C archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := root.loadConfig()
			if err != nil {
				return err
			}
			if output == "" {
				output = conf.Runtime
			}
			tc := conf.Toolchain()
			if err = toolchain.BuildRuntime(cmd.Context(), output, tc); err != nil {
				return err
			}
			cmd.Printf("==> Built %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "archive file (default: runtime from the project file)")
	return cmd
}

func NewHeaderCommand(root *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "header",
		Short: "Write the C header declaring the runtime symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				_, err := cmd.OutOrStdout().Write([]byte(abi.Header()))
				return err
			}
			return os.WriteFile(output, []byte(abi.Header()), 0666)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "header file (default: stdout)")
	return cmd
}
