package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wanderplan/wanderplan"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wanderplan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wanderplan version %s\n", strings.TrimSpace(wanderplan.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
