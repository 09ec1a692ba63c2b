// Command condqlfmt reads a condition as FilterQuery text or a structured
// JSON document, parses it against a YAML field-set fixture, normalizes
// it, and re-emits it in either format. It exists to give the library a
// runnable surface, the way the teacher's example commands give the
// Airport catalog/server packages one; it has no tests of its own.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/docfilter"
	"github.com/hugr-lab/condql/fieldset/yamlfields"
	"github.com/hugr-lab/condql/fquery"
	"github.com/hugr-lab/condql/normalize"
)

func main() {
	fieldsPath := flag.String("fields", "", "path to a YAML field-set fixture (required)")
	inFormat := flag.String("in", "filterquery", "input format: filterquery or json")
	outFormat := flag.String("out", "filterquery", "output format: filterquery or json")
	inFile := flag.String("file", "", "input file (default: stdin)")
	coalesceRanges := flag.Bool("coalesce-ranges", false, "enable the values-to-range normalization pass")
	flag.Parse()

	if err := run(*fieldsPath, *inFormat, *outFormat, *inFile, *coalesceRanges); err != nil {
		slog.Error("condqlfmt failed", "error", err)
		os.Exit(1)
	}
}

func run(fieldsPath, inFormat, outFormat, inFile string, coalesceRanges bool) error {
	if fieldsPath == "" {
		return fmt.Errorf("condqlfmt: -fields is required")
	}
	fs, err := yamlfields.Load(fieldsPath)
	if err != nil {
		return err
	}

	var input io.Reader = os.Stdin
	if inFile != "" {
		f, err := os.Open(inFile)
		if err != nil {
			return fmt.Errorf("condqlfmt: failed to open %s: %w", inFile, err)
		}
		defer f.Close()
		input = f
	}
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("condqlfmt: failed to read input: %w", err)
	}

	var c *condition.Condition
	switch inFormat {
	case "filterquery":
		c, err = fquery.NewParser(fs).Parse(string(data))
	case "json":
		c, err = docfilter.NewIngester(fs).DecodeJSON(data)
	default:
		return fmt.Errorf("condqlfmt: unknown input format %q", inFormat)
	}
	if err != nil {
		return err
	}
	if c == nil {
		c = condition.New(fs)
	}

	var opts []normalize.Option
	if coalesceRanges {
		opts = append(opts, normalize.WithValuesToRange())
	}
	normalize.New(opts...).Run(c)
	if c.HasErrors() {
		return fmt.Errorf("condqlfmt: normalization reported errors on the condition")
	}

	switch outFormat {
	case "filterquery":
		fmt.Println(fquery.NewExporter().Export(c))
	case "json":
		out, err := docfilter.NewEmitter().EncodeJSON(c)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("condqlfmt: unknown output format %q", outFormat)
	}
	return nil
}
