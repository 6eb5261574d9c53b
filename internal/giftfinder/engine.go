package giftfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Jose-Sabater/secret-santa/internal/catalog"
	"github.com/Jose-Sabater/secret-santa/internal/llm"
)

// CatalogGateway is the only capability surface the engine talks to.
// The orchestration loop never does open-ended dispatch; it issues
// searches and price lookups, nothing else.
type CatalogGateway interface {
	Search(ctx context.Context, query, market string, size int) ([]catalog.Candidate, error)
	Offers(ctx context.Context, productID, market string) (*catalog.PriceQuote, error)
}

// Options tunes one engine instance.
type Options struct {
	Model             string
	MaxQueries        int
	SearchSize        int
	SearchConcurrency int
	OfferConcurrency  int
}

func (o Options) withDefaults() Options {
	if o.MaxQueries < 1 {
		o.MaxQueries = 4
	}
	if o.SearchSize < 1 {
		o.SearchSize = 8
	}
	if o.SearchConcurrency < 1 {
		o.SearchConcurrency = 4
	}
	if o.OfferConcurrency < 1 {
		o.OfferConcurrency = 8
	}
	return o
}

// Engine runs one conversational recommendation turn as an explicit
// plan/gather/filter/draft/validate pipeline. It holds no per-call
// state; everything is passed in and returned.
type Engine struct {
	provider llm.Provider
	catalog  CatalogGateway
	opts     Options
	logger   zerolog.Logger
}

// NewEngine creates a recommendation engine.
func NewEngine(provider llm.Provider, gateway CatalogGateway, opts Options, logger zerolog.Logger) *Engine {
	return &Engine{
		provider: provider,
		catalog:  gateway,
		opts:     opts.withDefaults(),
		logger:   logger.With().Str("component", "giftfinder").Logger(),
	}
}

// Recommend processes one user turn against the supplied history and
// constraints and returns the validated result.
func (e *Engine) Recommend(ctx context.Context, message string, history []ConversationTurn, constraints SessionConstraints) (*Result, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Err: errors.New("message is required")}
	}
	if constraints.MinPrice != nil && constraints.MaxPrice != nil && *constraints.MinPrice > *constraints.MaxPrice {
		return nil, &ValidationError{Err: errors.New("minPrice must not exceed maxPrice")}
	}

	pc := BuildContext(history, message, constraints)

	plan, err := e.plan(ctx, pc)
	if err != nil {
		return nil, wrapTimeout(ctx, err)
	}

	if plan.NeedsMoreInfo || len(plan.Queries) == 0 {
		question := plan.Question
		if question == "" {
			question = "I'd love to help! Tell me a bit more about them — what do they enjoy, and roughly how old are they?"
		}
		return &Result{Message: question, NeedsMoreInfo: true}, nil
	}

	queries := plan.Queries
	if len(queries) > e.opts.MaxQueries {
		queries = queries[:e.opts.MaxQueries]
	}

	out := e.gather(ctx, queries, pc)
	if ctx.Err() != nil {
		return nil, wrapTimeout(ctx, ctx.Err())
	}

	if len(out.priced) == 0 {
		// Nothing usable. Distinguish "provider down" from "no matches":
		// only the former is an error.
		if out.searches > 0 && len(out.searchErrs) == out.searches {
			return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, errors.Join(out.searchErrs...))
		}
		return &Result{
			Message:       "I searched the catalog but couldn't find anything matching that budget and description. Could you tell me more about their interests, or loosen the budget a little?",
			NeedsMoreInfo: true,
		}, nil
	}

	draftContent, err := e.draft(ctx, pc, out.priced)
	if err != nil {
		return nil, wrapTimeout(ctx, err)
	}

	result, err := e.shapeDraft(draftContent, out.priced, pc)
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Int("products", len(result.Products)).
		Bool("needs_more_info", result.NeedsMoreInfo).
		Msg("turn complete")

	return result, nil
}

// plan asks the model which catalog searches to run. This is the one
// model-driven decision point before drafting; everything between is
// deterministic.
func (e *Engine) plan(ctx context.Context, pc PromptContext) (*planResponse, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: planSystemPrompt},
			{Role: llm.RoleUser, Content: buildPlanPrompt(pc, e.opts.MaxQueries)},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("planning searches: %w", err)
	}

	raw := extractJSON(resp.Content)
	if err := validateSchema(raw, planSchema); err != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("plan output: %v", err)}
	}

	var plan planResponse
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("parsing plan output: %v", err)}
	}

	e.logger.Debug().Strs("queries", plan.Queries).Bool("needs_more_info", plan.NeedsMoreInfo).Msg("plan")
	return &plan, nil
}

// draft asks the model to compose the response from priced candidates.
func (e *Engine) draft(ctx context.Context, pc PromptContext, candidates []pricedCandidate) (string, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: draftSystemPrompt},
			{Role: llm.RoleUser, Content: buildDraftPrompt(pc, candidates)},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return "", fmt.Errorf("drafting response: %w", err)
	}
	return resp.Content, nil
}

// wrapTimeout converts deadline failures into TimeoutError so callers
// can tell "ran out of budget" from other failures.
func wrapTimeout(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	return err
}
