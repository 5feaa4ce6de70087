package command

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"propchain/internal/gen"
)

// NewGenCommand analyzes, plans and writes generated files.
func NewGenCommand(cli *CLI) *cobra.Command {
	var keepStale bool

	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Generate path tables for the given packages",
		Long: "Loads the packages (or the config patterns), plans every reactive call\n" +
			"site found and writes one file per generation unit next to its\n" +
			"package. Generated files no longer produced are removed.\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.generate(args, keepStale, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().BoolVar(&keepStale, "keep-stale", false, "Do not remove generated files that are no longer produced")

	return cmd
}

// generate runs one pass and writes its files.
func (c *CLI) generate(patterns []string, keepStale bool, out io.Writer) (*pass, error) {
	p, err := c.runPass(patterns)
	if err != nil {
		return nil, err
	}

	genCfg := gen.DefaultGeneratorConfig()
	genCfg.OutputDir = c.Config.OutputDir
	genCfg.GenerateComments = c.Config.GenerateComments()

	files, err := gen.NewGenerator(genCfg, c.Log).Generate(p.plan.Units, p.analyzer)
	if err != nil {
		return nil, err
	}

	if !keepStale {
		if err := c.removeStale(p, files); err != nil {
			return nil, err
		}
	}

	if err := gen.WriteFiles(files, c.Config.OutputDir); err != nil {
		return nil, err
	}

	for _, f := range files {
		c.Log.Debug().Str("file", f.Filename).Str("pkg", f.PkgPath).Msg("wrote file")
	}

	fmt.Fprintf(out, "generated %d files (%d errors, %d warnings)\n",
		len(files), len(p.diags.Errors), len(p.diags.Warnings))

	return p, nil
}

// removeStale clears outdated generated files from every directory this
// pass writes into.
func (c *CLI) removeStale(p *pass, files []gen.GeneratedFile) error {
	byDir := make(map[string][]gen.GeneratedFile)

	if dir := c.Config.OutputDir; dir != "" {
		byDir[dir] = files
	} else {
		for _, pkg := range p.analyzer.Packages() {
			byDir[pkg.Dir] = nil
		}

		for _, f := range files {
			byDir[f.Dir] = append(byDir[f.Dir], f)
		}
	}

	for dir, keep := range byDir {
		if dir == "" {
			continue
		}

		removed, err := gen.RemoveStale(dir, keep)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return err
		}

		for _, name := range removed {
			c.Log.Info().Str("dir", dir).Str("file", name).Msg("removed stale file")
		}
	}

	return nil
}
