package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// SetVersion overrides the build version; called from main.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the paperlens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("paperlens", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
