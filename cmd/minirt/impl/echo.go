package minirt

import (
	"errors"
	"io"

	"github.com/goplus/minirt"
	"github.com/spf13/cobra"
)

func NewEchoCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "echo",
		Short: "Read integers until end of input and print each of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := minirt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			for {
				v, err := rt.ReadInt()
				if err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}
				if err = rt.PrintInt(v); err != nil {
					return err
				}
			}
		},
	}
}
