package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "mimeparse",
	Short: "Inspect RFC 5322 / MIME messages and mbox files",
}

func Execute() error {
	return rootCmd.Execute()
}
