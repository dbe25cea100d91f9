package api

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestDecodeMatchReq(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Name = "match_phrase"
	req.Params.Arguments = map[string]any{"phrase": "cat nap", "list": "songs"}

	decoded, err := decodeMatchReq(req)
	if err != nil {
		t.Fatalf("decodeMatchReq: %v", err)
	}
	mr := decoded.Request.(*matchReq)
	if mr.Phrase != "cat nap" || mr.List != "songs" {
		t.Errorf("request = %+v", mr)
	}
	if decoded.EnrichCtx == nil {
		t.Error("expected list context enrichment")
	}

	req.Params.Arguments = map[string]any{"phrase": "  "}
	if _, err := decodeMatchReq(req); err == nil {
		t.Error("expected error for blank phrase")
	}
}

func TestMCPEndpoints(t *testing.T) {
	reg, engine := setupService(t)
	eps := newEndpoints(&service{reg: reg, engine: engine}, nil)

	resp, err := eps.match(context.Background(), &matchReq{Phrase: "dog day"})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	mr := resp.(matchResponse)
	if !mr.Matched || len(mr.Matches) != 2 {
		t.Errorf("match = %+v", mr)
	}

	if _, err := eps.match(context.Background(), &matchReq{Phrase: "dog", List: "nope"}); err == nil {
		t.Error("expected unknown list error")
	}

	if srv := NewMCPServer(reg, engine, "test", nil); srv == nil {
		t.Fatal("NewMCPServer returned nil")
	}
}
