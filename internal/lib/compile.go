// Package lib wires together config loading, parsing, evaluation, and IR
// projection into the single Compile entry point the CLI (and tests) call.
package lib

import (
	"context"
	"path/filepath"

	"github.com/twoentartian/tydi-lang-2-sub000/internal/config"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/dump"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/eval"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/ir"
	"github.com/twoentartian/tydi-lang-2-sub000/lang/parser"

	"github.com/spf13/afero"
)

// CompileRequest bundles the CLI-overridable fields of config.Descriptor
// plus the config file path itself.
type CompileRequest struct {
	ConfigFile                    string
	Name                          string
	Output                        string
	TopLevelImplementation        string
	TopLevelImplementationPackage string
	Source                        []string
	Sugaring                      bool
}

// Compile runs the whole front-end pipeline against the real OS
// filesystem: load descriptor, parse sources, evaluate the top-level
// implementation, check assertions, project to IR, and write the three
// JSON artefacts (§6.3).
func Compile(ctx context.Context, req CompileRequest) error {
	return CompileFs(ctx, afero.NewOsFs(), req)
}

// CompileFs is Compile parameterized over the filesystem, so tests can run
// it against afero.NewMemMapFs() instead of touching disk (§6.2).
func CompileFs(ctx context.Context, fs afero.Fs, req CompileRequest) error {
	desc := &config.Descriptor{}
	if req.ConfigFile != "" {
		loaded, err := config.Load(fs, req.ConfigFile)
		if err != nil {
			return err
		}
		desc = loaded
	}
	desc.Override(req.Name, req.Output, req.TopLevelImplementation, req.TopLevelImplementationPackage, req.Sugaring, req.Source)

	if desc.Output == "" {
		return errwrap.Wrapf(interfaces.ErrInvalidLiteral, "no output directory set (pass --output or set it in the config file)")
	}
	if desc.TopLevelImplementationPackage == "" || desc.TopLevelImplementation == "" {
		return errwrap.Wrapf(interfaces.ErrInvalidLiteral, "no top-level implementation set (pass --top-level-implementation-package/--top-level-implementation or set them in the config file)")
	}

	sources, err := desc.LoadSources(fs)
	if err != nil {
		return err
	}

	proj, err := parser.ParseProject(sources)
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(desc.Output, 0o755); err != nil {
		return errwrap.Wrapf(err, "failed to create output directory %q", desc.Output)
	}
	parserResult, err := dump.MarshalJSON(proj)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, filepath.Join(desc.Output, "parser_result.json"), parserResult, 0o644); err != nil {
		return err
	}

	for _, pkg := range proj.Packages() {
		eval.InstallBuiltins(pkg.Scope)
	}
	e := eval.New(proj)
	if desc.Sugaring {
		if err := e.Sugaring(proj); err != nil {
			return err
		}
	}
	for _, pkg := range proj.Packages() {
		if err := e.ExpandAllControlFlow(pkg.Scope); err != nil {
			return err
		}
	}

	pkg, ok := proj.Package(desc.TopLevelImplementationPackage)
	if !ok {
		return errwrap.Wrapf(interfaces.ErrIdentifierNotFound, "top-level package %q not found", desc.TopLevelImplementationPackage)
	}
	top, ok := pkg.Scope.Local(desc.TopLevelImplementation)
	if !ok {
		return errwrap.Wrapf(interfaces.ErrIdentifierNotFound, "top-level implementation %q not found in package %q", desc.TopLevelImplementation, desc.TopLevelImplementationPackage)
	}
	if _, err := e.Evaluate(top); err != nil {
		return err
	}

	if err := e.CheckProjectAssertions(); err != nil {
		return err
	}

	codeStructure, err := dump.MarshalJSON(proj)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, filepath.Join(desc.Output, "code_structure.json"), codeStructure, 0o644); err != nil {
		return err
	}

	irBytes, err := ir.MarshalJSON(proj)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, filepath.Join(desc.Output, "json_IR.json"), irBytes, 0o644)
}
