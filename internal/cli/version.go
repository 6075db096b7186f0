package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/coloctools/sepacollect/internal/cli.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sepagen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sepagen %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
