// Package cli handles command line parsing. It's the first entry point
// after main(), and it drives the compile pipeline in lib.
package cli

import (
	"context"
	"fmt"
	"os"

	cliUtil "github.com/twoentartian/tydi-lang-2-sub000/cli/util"
	"github.com/twoentartian/tydi-lang-2-sub000/internal/lib"

	"github.com/alexflint/go-arg"
)

// CLI is the entry point for running the compiler normally from the shell.
func CLI(ctx context.Context, data *cliUtil.Data) error {
	if data == nil {
		return fmt.Errorf("this CLI was not run correctly")
	}
	if data.Program == "" || data.Version == "" {
		return fmt.Errorf("program was not compiled correctly")
	}

	args := Args{}
	args.version = data.Version
	args.description = data.Tagline

	config := arg.Config{Program: data.Program}
	parser, err := arg.NewParser(config, &args)
	if err != nil {
		return fmt.Errorf("cli config error: %w", err)
	}
	err = parser.Parse(data.Args[1:])
	if err == arg.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	if err == arg.ErrVersion {
		fmt.Printf("%s\n", data.Version)
		return nil
	}
	if err != nil {
		return cliUtil.CliParseError(err)
	}

	if args.CompileCmd != nil {
		return args.CompileCmd.Run(ctx)
	}

	parser.WriteHelp(os.Stdout)
	return nil
}

// Args is the top-level CLI parsing structure.
type Args struct {
	CompileCmd *CompileArgs `arg:"subcommand:compile" help:"compile a tydi-lang-2 project to JSON IR"`

	version     string `arg:"-"`
	description string `arg:"-"`
}

// Version implements go-arg's optional Version interface.
func (obj *Args) Version() string { return obj.version }

// Description implements go-arg's optional Description interface.
func (obj *Args) Description() string { return obj.description }

// CompileArgs is the flag surface for the `compile` subcommand (§6.5).
type CompileArgs struct {
	Name                          string   `arg:"--name" help:"project name, overrides the config file"`
	Output                        string   `arg:"--output" help:"output directory for the three JSON artefacts"`
	ConfigFile                    string   `arg:"--config-file" help:"path to a YAML project descriptor"`
	TopLevelImplementation        string   `arg:"--top-level-implementation" help:"name of the implementation to project to JSON IR"`
	TopLevelImplementationPackage string   `arg:"--top-level-implementation-package" help:"package owning the top-level implementation"`
	Source                        []string `arg:"--source,separate" help:"a .tydi source file; may be repeated"`
	Sugaring                      bool     `arg:"--sugaring" help:"run the sugaring pass, which leaves the project unchanged"`
}

// Run executes the compile subcommand against the real OS filesystem.
func (obj *CompileArgs) Run(ctx context.Context) error {
	return lib.Compile(ctx, lib.CompileRequest{
		ConfigFile:                    obj.ConfigFile,
		Name:                          obj.Name,
		Output:                        obj.Output,
		TopLevelImplementation:        obj.TopLevelImplementation,
		TopLevelImplementationPackage: obj.TopLevelImplementationPackage,
		Source:                        obj.Source,
		Sugaring:                      obj.Sugaring,
	})
}
