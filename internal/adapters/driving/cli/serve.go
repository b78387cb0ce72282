package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/convivio/internal/adapters/driving/mcp"
	"github.com/custodia-labs/convivio/internal/adapters/driving/rest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	Long: `Start the JSON REST API for events and weather.

Alongside /api/events and /api/weather the server exposes /health,
/ready and Prometheus metrics on /metrics. With --mcp both MCP tool
servers are also mounted over streamable HTTP at /mcp/events and
/mcp/weather.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from settings)")
	serveCmd.Flags().Bool("mcp", false, "Also mount the MCP servers under /mcp")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	router, err := newRouter(cmd)
	if err != nil {
		return err
	}

	addr := appSettings.Server.HTTPAddr
	if raw, _ := cmd.Flags().GetString("addr"); raw != "" {
		addr = raw
	}
	cmd.PrintErrf("REST API listening on http://localhost%s\n", addr)
	return rest.Run(cmd.Context(), addr, router)
}

// newRouter builds the REST router from the wired services.
func newRouter(cmd *cobra.Command) (http.Handler, error) {
	if appSettings == nil {
		return nil, errors.New("settings not loaded")
	}

	ports := &rest.Ports{
		Events:  eventService,
		Weather: weatherService,
		Store:   eventStore,
		Metrics: metrics,
	}

	if withMCP, _ := cmd.Flags().GetBool("mcp"); withMCP {
		mcpPorts := &mcp.Ports{Events: eventService, Weather: weatherService}
		ports.MCP = make(map[string]http.Handler)
		for _, kind := range []mcp.Kind{mcp.KindEvents, mcp.KindWeather} {
			server, err := mcp.NewServer(kind, mcpPorts, metrics)
			if err != nil {
				return nil, err
			}
			ports.MCP["/mcp/"+string(kind)] = server.Handler()
		}
	}

	router, err := rest.NewRouter(ports)
	if err != nil {
		return nil, err
	}
	return router, nil
}
