// Command antbyte is the CLI entry point: build the command tree, run it,
// translate any failure into the mandated exit code.
package main

import "github.com/cxrvus/antbyte/cli"

func main() {
	cli.Main()
}
