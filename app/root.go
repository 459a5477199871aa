// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "userhub",
	Short: "UserHub is a CRUD backend for users, groups and memberships",
	Long: `UserHub is a CRUD backend for users, groups and user-group memberships
with cookie based authentication, plus a couple of stream-processing
utilities (stdin line reversal and CSV to JSON-lines conversion).`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
