package api

import (
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/stressmatch/pkg/kit"
	"github.com/hazyhaar/stressmatch/pkg/match"
	"github.com/hazyhaar/stressmatch/pkg/phrases"
)

// NewMCPServer returns an MCP server exposing the stressmatch tools.
func NewMCPServer(reg *phrases.Registry, engine *match.Engine, version string, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer("stressmatch", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, reg, engine, logger)
	return srv
}

// RegisterMCPTools registers the three stressmatch MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *phrases.Registry, engine *match.Engine, logger *slog.Logger) {
	eps := newEndpoints(&service{reg: reg, engine: engine}, logger)
	registerMatchPhrase(srv, eps.match)
	registerPhraseStress(srv, eps.explain)
	registerListPhraseLists(srv, eps.lists)
}

func registerMatchPhrase(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("match_phrase",
		mcp.WithDescription("Find phrases in a phrase list whose stress pattern (meter) is identical to the given phrase."),
		mcp.WithString("phrase", mcp.Required(), mcp.Description("The phrase to match")),
		mcp.WithString("list", mcp.Description("Phrase list ID (default list when omitted)")),
	)

	kit.RegisterMCPTool(srv, tool, ep, decodeMatchReq)
}

func registerPhraseStress(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("phrase_stress",
		mcp.WithDescription("Show the per-word stress signature of a phrase, unknown words with spelling suggestions, and matches."),
		mcp.WithString("phrase", mcp.Required(), mcp.Description("The phrase to analyze")),
		mcp.WithString("list", mcp.Description("Phrase list ID (default list when omitted)")),
	)

	kit.RegisterMCPTool(srv, tool, ep, decodeMatchReq)
}

func registerListPhraseLists(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("list_phrase_lists",
		mcp.WithDescription("List the loaded phrase lists with entry counts."),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}

func decodeMatchReq(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	phrase, _ := args["phrase"].(string)
	if strings.TrimSpace(phrase) == "" {
		return nil, errMissingPhrase
	}
	list, _ := args["list"].(string)
	return &kit.MCPDecodeResult{
		Request:   &matchReq{Phrase: phrase, List: list},
		EnrichCtx: listContext(list),
	}, nil
}
