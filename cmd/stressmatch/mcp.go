package main

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/stressmatch/pkg/api"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the matcher as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serveMCP(cmd.Context(), a.in, a.out)
		},
	}
}

// serveMCP speaks MCP JSON-RPC over in/out until in ends or ctx is cancelled.
func (a *app) serveMCP(ctx context.Context, in io.Reader, out io.Writer) error {
	reg, engine, err := a.loadService()
	if err != nil {
		return err
	}
	mcpSrv := api.NewMCPServer(reg, engine, version, a.logger)
	return server.NewStdioServer(mcpSrv).Listen(ctx, in, out)
}
