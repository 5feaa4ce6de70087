package command

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"propchain/internal/diagnostic"
	"propchain/internal/plan"
)

// planReport is the --json output.
type planReport struct {
	Units       []plan.GenerationUnit  `json:"units"`
	Diagnostics diagnostic.Diagnostics `json:"diagnostics"`
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// NewPlanCommand prints the generation plan without writing files.
func NewPlanCommand(cli *CLI) *cobra.Command {
	var (
		dump   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan [packages...]",
		Short: "Print the generation plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cli.runPass(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if asJSON {
				data, err := json.MarshalIndent(planReport{Units: p.plan.Units, Diagnostics: p.diags}, "", "  ")
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(out, string(data))

				return err
			}

			if dump {
				dumper.Fdump(out, p.plan.Units)
				dumper.Fdump(out, p.diags)

				return nil
			}

			printPlan(out, p.plan.Units)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the full units instead of a summary")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print units and diagnostics as JSON")
	cmd.MarkFlagsMutuallyExclusive("dump", "json")

	return cmd
}

func printPlan(w io.Writer, units []plan.GenerationUnit) {
	for _, u := range units {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.PkgPath, u.Name, u.Kind, u.Accessibility)

		for _, m := range u.Methods {
			fmt.Fprintf(w, "\t%s -> %s (%s, %d chains)\n", m.Name, m.Output, m.Plan.Kind, len(m.Chains))
		}
	}
}
