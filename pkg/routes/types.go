package routes

import "fmt"

// RouteType identifies the procedural shape of a route. It is also the
// route component of a policy action.
type RouteType string

const (
	RouteTypeFiling       RouteType = "filing"
	RouteTypeMediation    RouteType = "mediation"
	RouteTypeLitigation   RouteType = "litigation"
	RouteTypeConsultation RouteType = "consultation"

	// RouteTypeGeneric is the fallback when a domain has no dataset
	// coverage. Always feasible.
	RouteTypeGeneric RouteType = "generic"
)

// AllRouteTypes lists every route type, including the generic fallback.
func AllRouteTypes() []RouteType {
	return []RouteType{
		RouteTypeFiling,
		RouteTypeMediation,
		RouteTypeLitigation,
		RouteTypeConsultation,
		RouteTypeGeneric,
	}
}

// Complexity grades how involved a route is for a self-represented user.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// CostRange is an estimated cost band in whole dollars.
type CostRange struct {
	MinUSD int `json:"min_usd"`
	MaxUSD int `json:"max_usd"`
}

func (c CostRange) String() string {
	return fmt.Sprintf("$%d-$%d", c.MinUSD, c.MaxUSD)
}

// TimelineRange is an estimated duration band in days.
type TimelineRange struct {
	MinDays int `json:"min_days"`
	MaxDays int `json:"max_days"`
}

func (t TimelineRange) String() string {
	return fmt.Sprintf("%d-%d days", t.MinDays, t.MaxDays)
}

// Link is a named pointer to a form or resource.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Route is a suggested procedural path for a legal domain, with cost and
// timeline estimates derived from historical case statistics.
type Route struct {
	Domain         Domain        `json:"domain"`
	Type           RouteType     `json:"type"`
	Title          string        `json:"title"`
	Summary        string        `json:"summary"`
	Steps          []string      `json:"steps"`
	NextSteps      []string      `json:"next_steps"`
	Forms          []Link        `json:"forms,omitempty"`
	Resources      []Link        `json:"resources,omitempty"`
	Cost           CostRange     `json:"cost"`
	Timeline       TimelineRange `json:"timeline"`
	AcceptanceRate float64       `json:"acceptance_rate"`
	Complexity     Complexity    `json:"complexity"`
}

// GlossaryTerm is a legal term with plain-language and professional
// definitions.
type GlossaryTerm struct {
	Term              string   `json:"term"`
	Definition        string   `json:"definition"`
	Domain            Domain   `json:"domain"`
	Complexity        string   `json:"complexity"`
	RelatedTerms      []string `json:"related_terms,omitempty"`
	Synonyms          []string `json:"synonyms,omitempty"`
	CommonUsage       string   `json:"common_usage,omitempty"`
	ProfessionalUsage string   `json:"professional_usage,omitempty"`
}
