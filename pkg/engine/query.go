package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/eventbus"
	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
	"github.com/lexroute/lexroute/pkg/store"
)

// briefGlossaryLimit caps glossary terms on brief responses.
const briefGlossaryLimit = 3

// QueryResponse is the full outcome of one handled query.
type QueryResponse struct {
	InteractionID string                    `json:"interaction_id"`
	SessionID     string                    `json:"session_id"`
	Domain        routes.Domain             `json:"domain"`
	Confidence    float64                   `json:"confidence"`
	Scores        map[routes.Domain]float64 `json:"scores,omitempty"`
	Action        policy.Action             `json:"action"`
	Exploratory   bool                      `json:"exploratory"`
	Fallback      bool                      `json:"fallback"`
	Routes        []routes.Route            `json:"routes"`
	Glossary      []routes.GlossaryTerm     `json:"glossary,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// HandleQuery runs the full pipeline for one query: classify, derive
// the policy state from session history, select an action, assemble
// the response, and persist the interaction record. Queries that reach
// no usable route always get the generic-guidance fallback rather than
// an error.
func (e *Engine) HandleQuery(ctx context.Context, sessionID, query string) (*QueryResponse, error) {
	started := time.Now()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result, err := e.classifier.Classify(query)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordClassification(string(result.Domain), result.Confidence)

	agg := e.sessionAggregate(ctx, sessionID)
	state := policy.DeriveState(result.Domain, agg.MeanReward(), agg.DomainCounts[result.Domain])

	proposed, glossary := e.selector.Propose(result.Domain)
	candidates := policy.CandidateActions(e.selector.RouteTypes(result.Domain))

	var fallback bool
	if len(candidates) == 0 {
		// No route coverage for this domain: the policy still runs
		// over the generic-guidance action so the state records the
		// visit, and the query never fails.
		candidates = []policy.Action{policy.GenericAction()}
		fallback = true
	}
	decision, err := e.policy.SelectAction(state, candidates)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordActionSelection(decision.Exploratory)

	response := &QueryResponse{
		InteractionID: uuid.NewString(),
		SessionID:     sessionID,
		Domain:        result.Domain,
		Confidence:    result.Confidence,
		Scores:        result.Scores,
		Action:        decision.Action,
		Exploratory:   decision.Exploratory,
		Fallback:      fallback,
		CreatedAt:     time.Now().UTC(),
	}
	e.assemblePresentation(response, proposed, glossary)

	rec := &store.InteractionRecord{
		InteractionID:   response.InteractionID,
		SessionID:       sessionID,
		Query:           query,
		Domain:          result.Domain,
		Confidence:      result.Confidence,
		Scores:          result.Scores,
		SnapshotVersion: result.SnapshotVersion,
		State:           state,
		Action:          decision.Action,
		Exploratory:     decision.Exploratory,
		CreatedAt:       response.CreatedAt,
	}
	if err := e.store.AppendInteraction(ctx, rec); err != nil {
		return nil, err
	}

	e.touchAggregate(ctx, agg, result.Domain)

	e.publisher.Publish(ctx, eventbus.BuildEnvelopeInput{
		EventType:     eventbus.EventQueryHandled,
		SessionID:     sessionID,
		InteractionID: response.InteractionID,
		Payload: map[string]any{
			"domain":      result.Domain,
			"confidence":  result.Confidence,
			"action":      decision.Action.Key(),
			"exploratory": decision.Exploratory,
			"fallback":    fallback,
		},
	})

	e.metrics.RecordQuery(string(result.Domain), fallback, time.Since(started))
	e.logger.InfoContext(ctx, "query handled",
		"interaction_id", response.InteractionID,
		"session_id", sessionID,
		"domain", result.Domain,
		"confidence", result.Confidence,
		"action", decision.Action.Key(),
		"fallback", fallback,
		"duration", time.Since(started))

	return response, nil
}

// assemblePresentation fills the response's routes and glossary
// according to the selected action. The action's route type leads;
// brief responses carry one route, detailed responses up to three.
func (e *Engine) assemblePresentation(response *QueryResponse, proposed []routes.Route, glossary []routes.GlossaryTerm) {
	if response.Fallback || len(proposed) == 0 {
		response.Routes = []routes.Route{routes.GenericRoute(response.Domain)}
		response.Fallback = true
	} else {
		ranked := make([]routes.Route, 0, len(proposed))
		for _, route := range proposed {
			if route.Type == response.Action.RouteType {
				ranked = append(ranked, route)
			}
		}
		for _, route := range proposed {
			if route.Type != response.Action.RouteType {
				ranked = append(ranked, route)
			}
		}

		limit := 1
		if response.Action.Depth == policy.DepthDetailed {
			limit = 3
		}
		if limit > len(ranked) {
			limit = len(ranked)
		}
		response.Routes = ranked[:limit]
	}

	if !response.Action.IncludeGlossary {
		return
	}
	if response.Action.Depth == policy.DepthBrief && len(glossary) > briefGlossaryLimit {
		glossary = glossary[:briefGlossaryLimit]
	}
	response.Glossary = glossary
}

// sessionAggregate loads the session aggregate, returning an empty one
// for fresh sessions.
func (e *Engine) sessionAggregate(ctx context.Context, sessionID string) *store.SessionAggregate {
	agg, err := e.store.GetAggregate(ctx, sessionID)
	if err != nil {
		if !store.IsNotFound(err) {
			e.logger.WarnContext(ctx, "aggregate load failed",
				"session_id", sessionID,
				"error", err)
		}
		return &store.SessionAggregate{
			SessionID:    sessionID,
			DomainCounts: make(map[routes.Domain]int),
		}
	}
	return agg
}

// touchAggregate records the visit in the session aggregate.
func (e *Engine) touchAggregate(ctx context.Context, agg *store.SessionAggregate, domain routes.Domain) {
	agg.Interactions++
	agg.DomainCounts[domain]++
	agg.LastSeen = time.Now().UTC()

	if err := e.store.PutAggregate(ctx, agg); err != nil {
		e.logger.WarnContext(ctx, "aggregate update failed",
			"session_id", agg.SessionID,
			"error", err)
	}
}

// ClassifyOnly classifies a query without touching session state.
// Used by the search/preview surface.
func (e *Engine) ClassifyOnly(query string) (*classifier.Result, error) {
	return e.classifier.Classify(query)
}
