package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/exchange"
	"github.com/nibzard/taskline/internal/storage"
)

// exportCommand writes the task list as a JSON document.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskline export", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := resolveDataFile(cfg, fs.Args()); err != nil {
		return err
	}

	list, err := storage.New(cfg.DataFile, storage.WithLogger(logger)).Load()
	if err != nil {
		return err
	}

	if *output == "" || *output == "-" {
		return exchange.Export(os.Stdout, list)
	}

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *output, err)
	}
	if err := exchange.Export(f, list); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", *output, err)
	}
	logger.Info("exported tasks", "count", list.Len(), "path", *output)
	return nil
}

// importCommand adds the tasks of a JSON document to the data file.
func importCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskline import", flag.ContinueOnError)
	replace := fs.Bool("replace", false, "Replace existing tasks instead of appending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("import requires exactly one document (use - for stdin)")
	}

	var in io.Reader = os.Stdin
	if name := fs.Arg(0); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening %s: %w", name, err)
		}
		defer f.Close()
		in = f
	}

	imported, err := exchange.Import(in)
	if err != nil {
		return err
	}

	store := storage.New(cfg.DataFile, storage.WithLogger(logger))
	list := imported
	if !*replace {
		list, err = store.Load()
		if err != nil {
			// Appending to a list we could not read would overwrite it.
			return err
		}
		for _, t := range imported.Tasks() {
			list.Add(t)
		}
	}

	if err := store.Save(list); err != nil {
		return err
	}
	fmt.Printf("Imported %d tasks. Now you have %d tasks in the list.\n", imported.Len(), list.Len())
	return nil
}
