package policy

import (
	"fmt"

	"github.com/lexroute/lexroute/pkg/routes"
)

// Depth controls how much detail a response carries.
type Depth string

const (
	DepthBrief    Depth = "brief"
	DepthDetailed Depth = "detailed"
)

// Action is one concrete way to answer a query: which route type to
// lead with, whether to attach glossary terms, and how detailed the
// response should be.
type Action struct {
	RouteType       routes.RouteType `json:"route_type"`
	IncludeGlossary bool             `json:"include_glossary"`
	Depth           Depth            `json:"depth"`
}

// Key returns the stable table key for the action.
func (a Action) Key() string {
	glossary := "plain"
	if a.IncludeGlossary {
		glossary = "glossary"
	}
	return fmt.Sprintf("%s|%s|%s", a.RouteType, glossary, a.Depth)
}

// CandidateActions enumerates the action space over the route types
// available for a domain. The order is deterministic: route types in
// the given rank order, then glossary off/on, then brief/detailed.
func CandidateActions(routeTypes []routes.RouteType) []Action {
	actions := make([]Action, 0, len(routeTypes)*4)
	for _, rt := range routeTypes {
		for _, glossary := range []bool{false, true} {
			for _, depth := range []Depth{DepthBrief, DepthDetailed} {
				actions = append(actions, Action{
					RouteType:       rt,
					IncludeGlossary: glossary,
					Depth:           depth,
				})
			}
		}
	}
	return actions
}

// GenericAction is the fallback when a domain has no route coverage.
func GenericAction() Action {
	return Action{
		RouteType:       routes.RouteTypeGeneric,
		IncludeGlossary: true,
		Depth:           DepthBrief,
	}
}
