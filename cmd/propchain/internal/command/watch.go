package command

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"propchain/internal/gen"
)

const defaultWatchDelay = 300 * time.Millisecond

// NewWatchCommand regenerates whenever a source file of the watched
// packages changes.
func NewWatchCommand(cli *CLI) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch [packages...]",
		Short: "Regenerate on every source change",
		Long: "Runs gen once, then watches the package directories and runs it\n" +
			"again when Go sources change. Bursts of changes are coalesced.\n",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return cli.watch(ctx, args, delay, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", defaultWatchDelay, "Quiet period before regenerating")

	return cmd
}

func (c *CLI) watch(ctx context.Context, patterns []string, delay time.Duration, out io.Writer) error {
	p, err := c.generate(patterns, false, out)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	c.watchPackages(watcher, p)

	debounced := debounce.New(delay)
	regen := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !sourceChange(ev) {
				continue
			}

			c.Log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("source changed")

			debounced(func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			c.Log.Warn().Err(err).Msg("watcher error")

		case <-regen:
			next, err := c.generate(patterns, false, out)
			if err != nil {
				c.Log.Error().Err(err).Msg("regeneration failed")
				continue
			}

			c.watchPackages(watcher, next)
		}
	}
}

// watchPackages adds every loaded package directory; adding a watched
// directory again is a no-op.
func (c *CLI) watchPackages(watcher *fsnotify.Watcher, p *pass) {
	for _, pkg := range p.analyzer.Packages() {
		if pkg.Dir == "" {
			continue
		}

		if err := watcher.Add(pkg.Dir); err != nil {
			c.Log.Warn().Err(err).Str("dir", pkg.Dir).Msg("cannot watch directory")
		}
	}
}

// sourceChange reports edits to hand-written Go files. Generated files
// are ignored so writing them does not trigger another pass.
func sourceChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(ev.Name)

	return filepath.Ext(name) == ".go" && !gen.IsGenerated(name)
}
