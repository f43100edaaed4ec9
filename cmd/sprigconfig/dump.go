package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

type dumpOptions struct {
	dir           string
	profile       string
	format        string
	output        string
	revealSecrets bool
	stdout        io.Writer
}

// runDump loads the configuration and renders it in the requested format.
func runDump(opts dumpOptions) error {
	cfg, err := config.Load(config.Options{
		Dir:     opts.dir,
		Profile: opts.profile,
	})
	if err != nil {
		return err
	}

	rendered, err := render(cfg, opts)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, rendered, 0o644); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, "writing output file")
		}
		fmt.Fprintf(opts.stdout, "Config written to %s\n", opts.output)
		return nil
	}

	_, err = opts.stdout.Write(rendered)
	return err
}

func render(cfg *config.Config, opts dumpOptions) ([]byte, error) {
	dump := config.DumpOptions{RevealSecrets: opts.revealSecrets}
	switch opts.format {
	case "yaml", "yml":
		return config.RenderYAML(cfg, dump)
	case "json":
		return config.RenderJSON(cfg, dump)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unsupported output format %q", opts.format)
	}
}
