// Command tydic compiles tydi-lang-2 source into JSON IR.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/twoentartian/tydi-lang-2-sub000/cli"
	cliUtil "github.com/twoentartian/tydi-lang-2-sub000/cli/util"
)

// set at compile time via -ldflags
var version = "dev"

func main() {
	data := &cliUtil.Data{
		Program: cliUtil.SafeProgram(os.Args[0]),
		Version: version,
		Tagline: "tydi-lang-2 compiler front-end",
		Args:    os.Args,
	}

	if err := cli.CLI(context.Background(), data); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
