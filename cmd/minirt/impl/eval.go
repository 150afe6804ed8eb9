package minirt

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goplus/minirt/evaltest"
	"github.com/spf13/cobra"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type evalOptions struct {
	noAsm   bool
	onlyAsm bool
	regs    string
	json    bool
}

func NewEvalCommand(root *RootOptions) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval [file.src ...]",
		Short: "Run the evaluation tests of the given programs (default: tests/*.src)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.noAsm && opts.onlyAsm {
				return errors.New("--no-asm and --only-asm are mutually exclusive")
			}
			conf, err := root.loadConfig()
			if err != nil {
				return err
			}
			files := args
			if len(files) == 0 {
				pattern := filepath.Join(conf.Dir, conf.Tests, "*.src")
				if files, err = filepath.Glob(pattern); err != nil {
					return err
				}
				if len(files) == 0 {
					return errors.New("no test programs match " + pattern)
				}
			}

			ec := conf.EvalTest()
			ec.NoAsm, ec.NoEval = opts.noAsm, opts.onlyAsm
			if cmd.Flags().Changed("regs") {
				ec.Regs = strings.Split(opts.regs, ";")
				cmd.Printf("REGS: %s\n", strconv.Quote(opts.regs))
			}
			r := evaltest.NewRunner(ec)
			defer r.Close()

			var reps []*evaltest.Report
			failed := 0
			for _, file := range evaltest.SortNumerically(files) {
				rep, err := r.RunFile(cmd.Context(), file)
				if err != nil {
					return err
				}
				reps = append(reps, rep)
				failed += len(rep.Failures)
				if !opts.json {
					if _, err = rep.WriteTo(cmd.OutOrStdout()); err != nil {
						return err
					}
				}
			}
			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err = enc.Encode(reps); err != nil {
					return err
				}
			}
			if failed > 0 {
				return errors.New(strconv.Itoa(failed) + " evaluation runs failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.noAsm, "no-asm", false, "only run the compiler's evaluator")
	cmd.Flags().BoolVar(&opts.onlyAsm, "only-asm", false, "only run the linked executables")
	cmd.Flags().StringVar(&opts.regs, "regs", "", "register options separated by ';'")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the reports as JSON")
	return cmd
}
