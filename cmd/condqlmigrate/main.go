// Command condqlmigrate batch-converts a directory of structured-codec
// documents (JSON or XML) into FilterQuery text files, the "persist then
// replay" convenience spec.md's Non-goals mention but leave to tooling
// rather than the core. It also demonstrates condwire's compressed batch
// path: each source document is round-tripped through a condwire.BatchWriter
// and condwire.BatchReader before being re-emitted, exercising the same
// path a long-lived cache of conditions would use.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/condwire"
	"github.com/hugr-lab/condql/docfilter"
	"github.com/hugr-lab/condql/fieldset/yamlfields"
	"github.com/hugr-lab/condql/fquery"
)

func main() {
	fieldsPath := flag.String("fields", "", "path to a YAML field-set fixture (required)")
	inDir := flag.String("in", "", "directory of .json/.xml structured documents (required)")
	outDir := flag.String("out", "", "directory to write .fq FilterQuery files into (required)")
	flag.Parse()

	if err := run(*fieldsPath, *inDir, *outDir); err != nil {
		slog.Error("condqlmigrate failed", "error", err)
		os.Exit(1)
	}
}

func run(fieldsPath, inDir, outDir string) error {
	if fieldsPath == "" || inDir == "" || outDir == "" {
		return fmt.Errorf("condqlmigrate: -fields, -in, and -out are all required")
	}
	fs, err := yamlfields.Load(fieldsPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("condqlmigrate: failed to create %s: %w", outDir, err)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("condqlmigrate: failed to read %s: %w", inDir, err)
	}

	ingester := docfilter.NewIngester(fs)
	exporter := fquery.NewExporter()

	writer, err := condwire.NewBatchWriter()
	if err != nil {
		return err
	}
	defer writer.Close()
	reader, err := condwire.NewBatchReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	migrated := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".xml" {
			continue
		}

		srcPath := filepath.Join(inDir, entry.Name())
		data, err := os.ReadFile(srcPath)
		if err != nil {
			return fmt.Errorf("condqlmigrate: failed to read %s: %w", srcPath, err)
		}

		var c *condition.Condition
		if ext == ".json" {
			c, err = ingester.DecodeJSON(data)
		} else {
			c, err = ingester.DecodeXML(data)
		}
		if err != nil {
			return fmt.Errorf("condqlmigrate: %s: %w", srcPath, err)
		}

		frame, err := writer.WriteFrame(c)
		if err != nil {
			return fmt.Errorf("condqlmigrate: %s: failed to encode compressed frame: %w", srcPath, err)
		}
		roundTripped, err := reader.ReadFrame(frame, fs)
		if err != nil {
			return fmt.Errorf("condqlmigrate: %s: failed to decode compressed frame: %w", srcPath, err)
		}

		out := exporter.Export(roundTripped)
		dstName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())) + ".fq"
		dstPath := filepath.Join(outDir, dstName)
		if err := os.WriteFile(dstPath, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("condqlmigrate: failed to write %s: %w", dstPath, err)
		}
		migrated++
	}

	slog.Info("condqlmigrate finished", "migrated", migrated, "in", inDir, "out", outDir)
	return nil
}
