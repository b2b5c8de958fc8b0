package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rnwolfe/habit/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print habit version",
	RunE:  runVersion,
}

func runVersion(_ *cobra.Command, _ []string) error {
	switch {
	case versionShort:
		fmt.Println(version.Short())
	case versionJSON:
		out, err := json.MarshalIndent(version.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		info := version.Get()
		fmt.Printf("habit %s\n", info)
		fmt.Printf("  %s %s\n", info.GoVersion, info.Platform)
	}
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build info as JSON")
}
