// Command mimeparse drives package parser from the command line, grounded
// on the teacher's own test/roundtrip and tools/pm cobra command trees
// (_examples/zostay-go-email/test/roundtrip/cmd, tools/pm/cmd).
package main

import (
	"github.com/spf13/cobra"

	"github.com/gomime/parser/cmd/mimeparse/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
