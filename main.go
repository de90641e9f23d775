package main

import (
	"fmt"
	"io"
	"os"

	"bookshelf/config"
	"bookshelf/library"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries what every subcommand needs once the root has been set up.
type app struct {
	configPath string

	cfg  *config.Config
	log  logger.Logger
	slot library.Slot
	mgr  *library.LibraryManager

	in  io.Reader
	out io.Writer
}

func main() {
	a := &app{in: os.Stdin, out: os.Stdout}
	err := newRootCmd(a).Execute()
	// PersistentPostRunE is skipped when a command fails.
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "A personal library catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newStatsCmd(a),
		newRenderCmd(a),
		newShellCmd(a),
	)
	return root
}

// open loads config, opens the configured slot and seeds an empty collection.
func (a *app) open() error {
	cfg, err := config.New(a.configPath)
	if err != nil {
		return errors.Wrap(err, "config error")
	}
	a.cfg = cfg
	a.log = logger.NewWithLevel(cfg.Log.Level)

	slot, err := library.OpenSlot(cfg.StoreOptions())
	if err != nil {
		return errors.Wrapf(err, "open %s store", cfg.Store.Driver)
	}
	a.slot = slot
	a.mgr = library.NewLibraryManager(slot, library.WithLogger(a.log))

	if cfg.Seed {
		n, err := library.SeedSampleData(a.mgr)
		if err != nil {
			a.log.Err(err).Warn("could not seed sample data")
		} else if n > 0 {
			a.log.Info("seeded sample data", logger.Data{"count": n})
		}
	}
	return nil
}

func (a *app) close() error {
	if a.slot == nil {
		return nil
	}
	slot := a.slot
	a.slot = nil
	return library.CloseSlot(slot)
}

// columns sizes list output to the terminal when stdout is one.
func (a *app) columns() library.TableColumns {
	if f, ok := a.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			return library.ColumnsForWidth(width)
		}
	}
	return library.DefaultColumns
}

// interactive reports whether input comes from a terminal, in which case the
// shell prints its banner and prompts.
func (a *app) interactive() bool {
	f, ok := a.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}
