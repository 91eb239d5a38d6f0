package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gomime/parser/object"
	"github.com/gomime/parser/parser"
	pstream "github.com/gomime/parser/stream"
)

var treeCmd = &cobra.Command{
	Use:   "tree file",
	Short: "Print a message's MIME part tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
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

	fmt.Println("message/rfc822")
	printBody(msg.Body, 1)
	return nil
}

// printBody renders obj and its descendants as an indented tree, dispatching
// on the concrete object types a DefaultFactory produces (spec.md §4.5's
// multipart/message/leaf split).
func printBody(obj object.Object, depth int) {
	if obj == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	switch o := obj.(type) {
	case *object.Multipart:
		fmt.Printf("%smultipart/%s (boundary=%q, %d parts)\n", indent, o.Subtype(), o.Boundary(), len(o.Parts()))
		for _, sub := range o.Parts() {
			printBody(sub, depth+1)
		}
	case *object.MessagePart:
		fmt.Printf("%smessage/%s\n", indent, o.Subtype())
		if m := o.Message(); m != nil {
			printBody(m.Body, depth+1)
		}
	case *object.Part:
		fmt.Printf("%s%s/%s\n", indent, o.Type(), o.Subtype())
	default:
		fmt.Printf("%s(unknown part)\n", indent)
	}
}
