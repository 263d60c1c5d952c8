package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped via -ldflags at release time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mqttdiff",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mqttdiff version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
