package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gomime/parser/parser"
	pstream "github.com/gomime/parser/stream"
)

var parseCmd = &cobra.Command{
	Use:   "parse file",
	Short: "Parse a single message and print its headers and diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	fs, err := pstream.NewFileStream(f)
	if err != nil {
		return err
	}

	p := parser.New(fs)
	msg := p.ConstructMessage()
	if msg == nil {
		return fmt.Errorf("mimeparse: no message could be constructed from %s", args[0])
	}

	for _, f := range msg.Header().Fields() {
		fmt.Printf("%s: %s\n", f.Name, f.Value)
	}

	for _, d := range p.Diagnostics {
		fmt.Fprintf(os.Stderr, "diagnostic@%d: %s\n", d.Offset, d.Message)
	}
	return nil
}
