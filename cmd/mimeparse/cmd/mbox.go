package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gomime/parser/mbox"
	pstream "github.com/gomime/parser/stream"
)

var mboxCmd = &cobra.Command{
	Use:   "mbox file",
	Short: "List the messages in a Berkeley mbox file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMbox,
}

func init() {
	rootCmd.AddCommand(mboxCmd)
}

func runMbox(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	fs, err := pstream.NewFileStream(f)
	if err != nil {
		return err
	}

	r := mbox.NewReader(fs)
	n := 0
	for {
		rec, err := r.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			break
		}
		n++
		subject, _ := rec.Message.Header().GetSubject()
		fmt.Printf("%d: %s  %q\n", n, string(rec.FromLine), subject)
	}

	for _, d := range r.Diagnostics() {
		fmt.Fprintf(os.Stderr, "diagnostic@%d: %s\n", d.Offset, d.Message)
	}
	fmt.Printf("%d message(s)\n", n)
	return nil
}
