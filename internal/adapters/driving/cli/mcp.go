package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/convivio/internal/adapters/driving/mcp"
	"github.com/custodia-labs/convivio/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:       "serve <events|weather>",
	Short:     "Start an MCP server",
	ValidArgs: []string{string(mcp.KindEvents), string(mcp.KindWeather)},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Start one of the Model Context Protocol tool servers.

  events   create_event, add_participant, update_preferences,
           event_summary, suggest_restaurants, split_bill
  weather  get_alerts, get_forecast

By default the server communicates over stdio using JSON-RPC. Use
--transport http to serve the streamable HTTP transport instead. The
defaults come from server.transport and server.http_addr
(MCP_TRANSPORT and HTTP_ADDR).

Examples:
  # Stdio mode (default, for desktop assistants)
  convivio mcp serve events

  # HTTP mode (for MCP Inspector, remote access)
  convivio mcp serve weather --transport http --addr :8081

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "eventi-amici": {
        "command": "/path/to/convivio",
        "args": ["mcp", "serve", "events"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringP("transport", "t", "", "Transport: stdio, http or streamable-http (default from settings)")
	mcpServeCmd.Flags().String("addr", "", "Listen address for the HTTP transport (default from settings)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	if appSettings == nil {
		return errors.New("settings not loaded")
	}

	kind, err := mcp.ParseKind(args[0])
	if err != nil {
		return err
	}

	transport := appSettings.Server.Transport
	if raw, _ := cmd.Flags().GetString("transport"); raw != "" {
		t, ok := domain.ParseTransport(raw)
		if !ok {
			return fmt.Errorf("unknown transport %q (use stdio or http)", raw)
		}
		transport = t
	}
	addr := appSettings.Server.HTTPAddr
	if raw, _ := cmd.Flags().GetString("addr"); raw != "" {
		addr = raw
	}

	ports := &mcp.Ports{
		Events:  eventService,
		Weather: weatherService,
	}
	server, err := mcp.NewServer(kind, ports, metrics)
	if err != nil {
		return err
	}

	if transport == domain.TransportHTTP {
		cmd.PrintErrf("MCP server %q listening on http://localhost%s\n", kind, addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
