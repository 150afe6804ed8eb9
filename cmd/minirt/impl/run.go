package minirt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/minirt/internal/pathutil"
	"github.com/goplus/minirt/toolchain"
	"github.com/spf13/cobra"
)

var errStderr = errors.New("non-empty stderr data from running executable")

func NewRunCommand(root *RootOptions) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "run file.s",
		Short: "Assemble a program, link it against the runtime and run it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := root.loadConfig()
			if err != nil {
				return err
			}
			asm, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			work, err := os.MkdirTemp("", "minirt-run-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(work)

			tc := conf.Toolchain()
			exe := filepath.Join(work, pathutil.Exe(pathutil.TrimExt(filepath.Base(asm))))
			if err = toolchain.BuildExe(cmd.Context(), asm, exe, tc); err != nil {
				return err
			}
			var stdin string
			if input != "" {
				stdin = strings.Join(strings.Fields(input), "\n") + "\n"
			}
			ret, err := toolchain.Exec(cmd.Context(), exe, nil, stdin, tc)
			if err != nil {
				return err
			}
			if len(ret.Stderr) > 0 {
				cmd.PrintErrln(string(ret.Stderr))
				return errStderr
			}
			out := cmd.OutOrStdout()
			if len(ret.Stdout) > 0 {
				fmt.Fprintf(out, "OUTPUT (stdout):\n----\n%s\n----\n", ret.Stdout)
			}
			fmt.Fprintf(out, "OUTPUT (return code): %d\n", ret.ExitCode)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "integers fed to the program, one per line")
	return cmd
}
