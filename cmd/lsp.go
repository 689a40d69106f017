package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmittjoh/pdepend/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run a documentSymbol-only language server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := lsp.NewServer(getVersionString())
		if err := server.RunStdio(); err != nil {
			return fmt.Errorf("lsp server exited: %w", err)
		}
		return nil
	},
}
