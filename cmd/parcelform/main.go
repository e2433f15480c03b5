package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/reoring/parcelform"
	"github.com/reoring/parcelform/schema"
	"github.com/reoring/parcelform/services"
	"github.com/reoring/parcelform/source"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// maxRequestBytes caps a single request document.
const maxRequestBytes = 1 << 20

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "validate":
		return validateCmd(ctx, args[1:], stdin, stdout, stderr)
	case "services":
		return servicesCmd(args[1:], stdout, stderr)
	case "fields":
		return fieldsCmd(args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "parcelform CLI\n\nUsage:\n  parcelform validate [-category c] [-f request.json] [-strict] [-catalog file.yaml] [-v]\n  parcelform services -category c [-catalog file.yaml]\n  parcelform fields -category c\n  parcelform schema -category c [-catalog file.yaml]\n\nCategories: standart, document, letter")
}

// common holds the flags shared by every subcommand.
type common struct {
	category string
	catalog  string
	verbose  bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "package category (standart, document, letter)")
	fs.StringVar(&c.catalog, "catalog", "", "YAML service catalog overriding the built-in one")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logs")
}

func (c *common) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func (c *common) loadCatalog() (*services.Catalog, error) {
	if c.catalog == "" {
		return services.DefaultCatalog(), nil
	}
	f, err := os.Open(c.catalog)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return services.LoadCatalog(f)
}

func (c *common) parseCategory() (parcelform.Category, error) {
	if c.category == "" {
		return "", errors.New("-category is required")
	}
	return parcelform.ParseCategory(c.category)
}

func validateCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cm common
	var file string
	var strict bool
	cm.register(fs)
	fs.StringVar(&file, "f", "-", "request JSON file ('-' reads stdin)")
	fs.BoolVar(&strict, "strict", false, "reject unknown keys")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := cm.logger(stderr)

	catalog, err := cm.loadCatalog()
	if err != nil {
		log.Error("loading service catalog", slog.Any("error", err))
		return exitUsage
	}

	in := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			log.Error("opening request", slog.String("file", file), slog.Any("error", err))
			return exitUsage
		}
		defer f.Close()
		in = f
	}
	opt := source.Options{MaxBytes: maxRequestBytes}
	if strict {
		opt.Unknown = source.UnknownStrict
	}
	raw, err := source.ReadRaw(in, opt)
	if err != nil {
		return report(stdout, stderr, log, err)
	}

	category := raw.PackageType
	if cm.category != "" {
		c, err := cm.parseCategory()
		if err != nil {
			log.Error("invalid category flag", slog.Any("error", err))
			return exitUsage
		}
		if raw.PackageType == "" {
			raw.PackageType = c
		}
		category = c
	}
	if category == "" {
		log.Error("no category: set packageType in the request or pass -category")
		return exitUsage
	}

	engine := schema.New(schema.WithCatalog(catalog), schema.WithLogger(log))
	sh, err := engine.Validate(ctx, category, raw)
	if err != nil {
		return report(stdout, stderr, log, err)
	}
	log.Debug("request accepted", slog.String("category", string(category)))
	return writeJSON(stdout, stderr, sh)
}

// report prints field issues as JSON (exit 1) or logs a fatal error (exit 2).
func report(stdout, stderr io.Writer, log *slog.Logger, err error) int {
	if iss, ok := parcelform.AsIssues(err); ok {
		if code := writeJSON(stdout, stderr, map[string]any{"issues": iss}); code != exitOK {
			return code
		}
		return exitInvalid
	}
	log.Error("validation aborted", slog.Any("error", err))
	return exitUsage
}

func servicesCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("services", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cm common
	cm.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := cm.logger(stderr)
	c, err := cm.parseCategory()
	if err != nil {
		log.Error("invalid category", slog.Any("error", err))
		return exitUsage
	}
	catalog, err := cm.loadCatalog()
	if err != nil {
		log.Error("loading service catalog", slog.Any("error", err))
		return exitUsage
	}
	opts, err := services.New(services.WithCatalog(catalog), services.WithLogger(log)).Synchronize(c)
	if err != nil {
		log.Error("synchronizing services", slog.Any("error", err))
		return exitUsage
	}
	return writeJSON(stdout, stderr, opts)
}

func fieldsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fields", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cm common
	cm.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := cm.logger(stderr)
	c, err := cm.parseCategory()
	if err != nil {
		log.Error("invalid category", slog.Any("error", err))
		return exitUsage
	}
	fields, err := schema.VisibleFields(c)
	if err != nil {
		log.Error("resolving fields", slog.Any("error", err))
		return exitUsage
	}
	return writeJSON(stdout, stderr, fields)
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cm common
	cm.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := cm.logger(stderr)
	c, err := cm.parseCategory()
	if err != nil {
		log.Error("invalid category", slog.Any("error", err))
		return exitUsage
	}
	catalog, err := cm.loadCatalog()
	if err != nil {
		log.Error("loading service catalog", slog.Any("error", err))
		return exitUsage
	}
	s, err := schema.New(schema.WithCatalog(catalog)).JSONSchema(c)
	if err != nil {
		log.Error("projecting schema", slog.Any("error", err))
		return exitUsage
	}
	return writeJSON(stdout, stderr, s)
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "encoding output: %v\n", err)
		return exitUsage
	}
	b = append(b, '\n')
	if _, err := stdout.Write(b); err != nil {
		fmt.Fprintf(stderr, "writing output: %v\n", err)
		return exitUsage
	}
	return exitOK
}
