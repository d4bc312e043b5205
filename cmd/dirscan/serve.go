package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/scanwalk/dirscan/internal/lister"
)

var (
	serveRoot     string
	listerService *lister.Service
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve the scanner over MCP stdio",
		Long: `serve runs a Model Context Protocol (MCP) server over stdio that
exposes directory listing and tree scanning tools, confined to the
tree rooted at the given path.`,
		Example: `dirscan serve ~/src`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	var root string
	if len(args) > 0 {
		root = args[0]
	} else {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}
	serveRoot = absRoot
	listerService = lister.New()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dirscan",
		Version: version,
	}, nil)

	registerTools(server)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
