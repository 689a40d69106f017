package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pdepend",
	Short: "A declaration parser and symbol table for PHP-like sources",
	Long: `pdepend parses PHP-like source files into a tree of packages, classes,
interfaces, functions and their dependencies, without executing or fully
type-checking the code. It resolves names against use-imports and active
namespaces, reads @package/@var/@return/@throws doc-comment annotations,
and can serve the result over stdin/stdout as a minimal language server.`,
	Version: getVersionString(),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pdepend %s\n", getVersionString())
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Date:    %s\n", date)
	},
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to .pdependrc.yaml (default: ./.pdependrc.yaml)")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)
}
