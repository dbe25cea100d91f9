package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hazyhaar/stressmatch/pkg/kit"
	"github.com/hazyhaar/stressmatch/pkg/match"
	"github.com/hazyhaar/stressmatch/pkg/phrases"
)

// Shared request/response types used by both HTTP and MCP transports.

type matchReq struct {
	Phrase string
	List   string
}

type matchBatchReq struct {
	Phrases []string
	List    string
}

type matchResponse struct {
	Phrase    string   `json:"phrase"`
	List      string   `json:"list,omitempty"`
	Known     bool     `json:"known"`
	Signature string   `json:"signature"`
	Matched   bool     `json:"matched"`
	Matches   []string `json:"matches"`
	Text      string   `json:"text"`
}

type batchResponse struct {
	Results []matchResponse `json:"results"`
}

type listsResponse struct {
	Lists []phrases.ListInfo `json:"lists"`
}

const maxBatch = 100

// service bundles what every endpoint needs.
type service struct {
	reg    *phrases.Registry
	engine *match.Engine
}

func (s *service) matchOne(ctx context.Context, phrase string, idx *phrases.Index, list string) matchResponse {
	start := time.Now()
	resp := matchResponse{Phrase: phrase, List: list, Matches: []string{}}

	sig, ok := s.engine.Signature(phrase)
	resp.Known = ok
	resp.Signature = string(sig)
	if ok {
		if m, found := idx.Lookup(sig); found {
			resp.Matches = m
			resp.Matched = true
		}
	}
	if resp.Matched {
		resp.Text = strings.Join(resp.Matches, "\n")
	} else {
		resp.Text = match.NoMatchesMessage
	}

	observeMatch(kit.GetTransport(ctx), resp.Known, resp.Matched, start)
	return resp
}

func matchEndpoint(s *service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*matchReq)
		idx, err := s.reg.Get(req.List)
		if err != nil {
			return nil, err
		}
		return s.matchOne(ctx, req.Phrase, idx, req.List), nil
	}
}

func matchBatchEndpoint(s *service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*matchBatchReq)
		if len(req.Phrases) == 0 {
			return nil, fmt.Errorf("phrases array is empty")
		}
		if len(req.Phrases) > maxBatch {
			return nil, fmt.Errorf("too many phrases (max %d, got %d)", maxBatch, len(req.Phrases))
		}
		idx, err := s.reg.Get(req.List)
		if err != nil {
			return nil, err
		}
		results := make([]matchResponse, len(req.Phrases))
		for i, p := range req.Phrases {
			results[i] = s.matchOne(ctx, p, idx, req.List)
		}
		return batchResponse{Results: results}, nil
	}
}

func explainEndpoint(s *service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*matchReq)
		idx, err := s.reg.Get(req.List)
		if err != nil {
			return nil, err
		}
		return s.engine.Explain(req.Phrase, idx), nil
	}
}

func listsEndpoint(s *service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return listsResponse{Lists: s.reg.List()}, nil
	}
}

// endpointSet holds the logged endpoints shared by HTTP and MCP.
type endpointSet struct {
	match      kit.Endpoint
	matchBatch kit.Endpoint
	explain    kit.Endpoint
	lists      kit.Endpoint
}

func newEndpoints(s *service, logger *slog.Logger) endpointSet {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, name), kit.Recover())(ep)
	}
	return endpointSet{
		match:      wrap("match", matchEndpoint(s)),
		matchBatch: wrap("match_batch", matchBatchEndpoint(s)),
		explain:    wrap("explain", explainEndpoint(s)),
		lists:      wrap("lists", listsEndpoint(s)),
	}
}

var errMissingPhrase = errors.New("missing phrase")

func listContext(list string) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return kit.WithList(ctx, list)
	}
}
