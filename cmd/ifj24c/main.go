// Command ifj24c compiles an IFJ24 source program read from stdin into
// IFJcode24 assembly written to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/gmofishsauce/ifj24c/internal/errs"
	"github.com/gmofishsauce/ifj24c/internal/parser"
)

func main() {
	os.Exit(realMain())
}

func realMain() (code int) {
	ctx := errs.NewContext()
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			code = errs.Internal
		}
	}()

	code = parser.Compile(os.Stdin, os.Stdout, ctx)
	if ctx.HasError() {
		ctx.Print()
	}
	return code
}
