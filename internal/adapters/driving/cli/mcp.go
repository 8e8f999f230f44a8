package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qalint/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can validate
Q&A documents while editing them.

The server exposes the validate_document and list_languages tools, the
rule catalogue as qalint://rules and, when history is available, recorded
runs as qalint://runs.

By default the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead, for example to test with MCP Inspector.

Examples:
  # Stdio mode (default)
  qalint mcp serve

  # HTTP mode
  qalint mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "qalint": {
        "command": "/path/to/qalint",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Validation: validationService,
		Settings:   settingsService,
		History:    historyService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
