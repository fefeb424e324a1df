// Package protorec is a proto3 schema compiler: it walks a directory of
// .proto files and emits, for every message, an immutable model type, a
// wire-format parser, a canonical writer and a round-trip unit test, all
// depending only on the runtime package.
//
// The package is a library; the build system (or cmd/protorec) drives it.
package protorec

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/protorec/protorec/gen"
	"github.com/protorec/protorec/internal/strcase"
	"github.com/protorec/protorec/parser"
	"github.com/protorec/protorec/schema"
)

// Options configures one generator invocation.
type Options struct {
	// DestDir is the root directory generated source is written under.
	// Each file lands at DestDir/<package path>/<name>.
	DestDir string

	// TestDestDir is the root for generated tests. Defaults to DestDir.
	TestDestDir string

	// ModelPackage is the base import path for generated models. The
	// final package appends the source directory bucket.
	ModelPackage string

	// ParserPackage, WriterPackage, CodecPackage and JSONCodecPackage
	// default to ModelPackage: Go import cycles rule out the split layout
	// the JVM implementation uses, and one package per bucket is how
	// protoc's Go plugin lays generated code out anyway.
	ParserPackage    string
	WriterPackage    string
	CodecPackage     string
	JSONCodecPackage string

	// TestPackage defaults to ModelPackage; generated tests live in the
	// external _test package of that directory.
	TestPackage string

	// CycleBreak lists UPPER_SNAKE oneof branch names excluded from
	// generated test data to keep recursive schemas terminating. Defaults
	// to the recursive cryptographic key structures.
	CycleBreak []string

	// Diagnostics receives warnings (unknown elements, unknown options).
	// Warnings never change the outcome of a run. Defaults to os.Stderr.
	Diagnostics io.Writer
}

func (o Options) withDefaults() (Options, error) {
	if o.DestDir == "" {
		return o, fmt.Errorf("DestDir must be set")
	}
	if o.ModelPackage == "" {
		return o, fmt.Errorf("ModelPackage must be set")
	}
	if o.TestDestDir == "" {
		o.TestDestDir = o.DestDir
	}
	if o.ParserPackage == "" {
		o.ParserPackage = o.ModelPackage
	}
	if o.WriterPackage == "" {
		o.WriterPackage = o.ModelPackage
	}
	if o.CodecPackage == "" {
		o.CodecPackage = o.ModelPackage
	}
	if o.JSONCodecPackage == "" {
		o.JSONCodecPackage = o.ModelPackage
	}
	if o.TestPackage == "" {
		o.TestPackage = o.ModelPackage
	}
	if o.CycleBreak == nil {
		for name := range gen.DefaultCycleBreak() {
			o.CycleBreak = append(o.CycleBreak, name)
		}
	}
	if o.Diagnostics == nil {
		o.Diagnostics = os.Stderr
	}
	return o, nil
}

// Generate compiles every .proto file under protoDir. Generation is
// single-threaded; the symbol table is read-only once all files have
// loaded. Any parse error, unresolved reference or map field aborts the
// run with no further artifacts written.
func Generate(protoDir string, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	paths, err := collectProtoFiles(protoDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .proto files under %s", protoDir)
	}

	var files []*schema.File
	for _, path := range paths {
		pf, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		bucket := strings.ToLower(filepath.Base(filepath.Dir(path)))
		f, err := schema.BuildFile(pf, bucket)
		if err != nil {
			return err
		}
		for _, w := range f.Warnings {
			fmt.Fprintf(opts.Diagnostics, "warning: %s\n", w)
		}
		files = append(files, f)
	}

	lookup, err := schema.NewLookup(schema.Config{
		ModelBase:     opts.ModelPackage,
		ParserBase:    opts.ParserPackage,
		WriterBase:    opts.WriterPackage,
		TestBase:      opts.TestPackage,
		CodecBase:     opts.CodecPackage,
		JSONCodecBase: opts.JSONCodecPackage,
	}, files)
	if err != nil {
		return err
	}

	cycleBreak := map[string]bool{}
	for _, name := range opts.CycleBreak {
		cycleBreak[strcase.ToUpperSnakeCase(name)] = true
	}
	cfg := &gen.Config{Lookup: lookup, CycleBreak: cycleBreak}

	emitters := &messageEmitters{
		source: []messageEmitter{
			gen.NewModelEmitter(cfg),
			gen.NewParserEmitter(cfg),
			gen.NewWriterEmitter(cfg),
		},
		test: gen.NewTestEmitter(cfg),
	}
	enums := gen.NewEnumEmitter(cfg)

	for _, f := range files {
		for _, msg := range f.Messages {
			if err := emitters.generateMessage(msg, opts); err != nil {
				return err
			}
		}
		for _, e := range f.Enums {
			artifact, err := enums.Emit(e)
			if err != nil {
				return err
			}
			if err := writeArtifact(opts.DestDir, artifact); err != nil {
				return err
			}
		}
	}
	return nil
}

type messageEmitter interface {
	Emit(msg *schema.Message) (*gen.Artifact, error)
}

type messageEmitters struct {
	source []messageEmitter
	test   *gen.TestEmitter
}

// generateMessage emits the four artifacts for msg, then recurses into
// nested messages.
func (e *messageEmitters) generateMessage(msg *schema.Message, opts Options) error {
	for _, emitter := range e.source {
		artifact, err := emitter.Emit(msg)
		if err != nil {
			return err
		}
		if err := writeArtifact(opts.DestDir, artifact); err != nil {
			return err
		}
	}
	artifact, err := e.test.Emit(msg)
	if err != nil {
		return err
	}
	if err := writeArtifact(opts.TestDestDir, artifact); err != nil {
		return err
	}

	for _, nested := range msg.Messages {
		if err := e.generateMessage(nested, opts); err != nil {
			return err
		}
	}
	return nil
}

// collectProtoFiles walks protoDir for .proto files in sorted order, so
// output is a pure function of the input tree.
func collectProtoFiles(protoDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(protoDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".proto") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func writeArtifact(destDir string, artifact *gen.Artifact) error {
	dir := filepath.Join(destDir, filepath.FromSlash(artifact.Package))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
