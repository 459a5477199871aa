package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/userhub/userhub/internal/streams"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(reverseCmd)
}

var reverseCmd = &cobra.Command{
	Use:   "reverse",
	Short: "Reverse each line read from standard input",
	RunE: func(_ *cobra.Command, _ []string) error {
		return streams.ReverseLines(os.Stdin, os.Stdout)
	},
}
