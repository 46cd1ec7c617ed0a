package routes

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/lexroute/lexroute/pkg/logger"
)

// Selector proposes candidate routes and glossary terms for a domain.
// The backing dataset is immutable; Reload publishes a replacement
// atomically so concurrent Propose calls never observe a partial refresh.
type Selector struct {
	dataset atomic.Pointer[Dataset]
	logger  logger.Logger
}

// NewSelector creates a selector over the given dataset. A nil dataset
// falls back to the built-in reference data.
func NewSelector(ds *Dataset, log logger.Logger) *Selector {
	if ds == nil {
		ds = DefaultDataset()
	}
	if log == nil {
		log = logger.Global()
	}
	s := &Selector{logger: log}
	s.dataset.Store(ds)
	return s
}

// Propose returns the candidate routes and glossary terms for a domain.
// Routes are ordered by historical acceptance rate descending, ties broken
// by lower estimated cost. A domain with no coverage yields empty slices,
// not an error.
func (s *Selector) Propose(domain Domain) ([]Route, []GlossaryTerm) {
	ds := s.dataset.Load()

	candidates := ds.Routes[domain]
	sorted := make([]Route, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AcceptanceRate != sorted[j].AcceptanceRate {
			return sorted[i].AcceptanceRate > sorted[j].AcceptanceRate
		}
		return sorted[i].Cost.MinUSD < sorted[j].Cost.MinUSD
	})

	terms := ds.Glossary[domain]
	out := make([]GlossaryTerm, len(terms))
	copy(out, terms)

	if len(sorted) == 0 {
		s.logger.Debug("no route coverage for domain", "domain", domain)
	}

	return sorted, out
}

// RouteTypes returns the distinct route types available for a domain, in
// the same order Propose ranks them. The caller appends the generic
// fallback itself when coverage is empty.
func (s *Selector) RouteTypes(domain Domain) []RouteType {
	candidates, _ := s.Propose(domain)
	seen := make(map[RouteType]bool, len(candidates))
	var types []RouteType
	for _, r := range candidates {
		if !seen[r.Type] {
			seen[r.Type] = true
			types = append(types, r.Type)
		}
	}
	return types
}

// Search returns routes whose title or summary contains the term,
// case-insensitively, across all domains.
func (s *Selector) Search(term string) []Route {
	ds := s.dataset.Load()
	needle := strings.ToLower(term)

	var results []Route
	for _, domainRoutes := range ds.Routes {
		for _, r := range domainRoutes {
			if strings.Contains(strings.ToLower(r.Title), needle) ||
				strings.Contains(strings.ToLower(r.Summary), needle) {
				results = append(results, r)
			}
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Domain != results[j].Domain {
			return results[i].Domain < results[j].Domain
		}
		return results[i].Title < results[j].Title
	})
	return results
}

// Reload atomically replaces the backing dataset.
func (s *Selector) Reload(ds *Dataset) {
	if ds == nil {
		return
	}
	s.dataset.Store(ds)
	s.logger.Info("route dataset reloaded",
		"domains", len(ds.Routes),
		"glossary_domains", len(ds.Glossary))
}

// GenericRoute returns the fallback guidance used when a domain has no
// dataset coverage or the classifier reports an unknown domain.
func GenericRoute(domain Domain) Route {
	label := strings.ReplaceAll(string(domain), "_", " ")
	if domain == DomainUnknown {
		label = "legal"
	}
	return Route{
		Domain:  domain,
		Type:    RouteTypeGeneric,
		Title:   fmt.Sprintf("General %s guidance", label),
		Summary: fmt.Sprintf("General information and next steps for %s matters.", label),
		Steps: []string{
			"Consult with a qualified attorney",
			"Gather relevant documents",
			"Understand your legal rights",
			"Consider alternative dispute resolution",
		},
		NextSteps: []string{
			"Schedule consultation with specialist attorney",
			"Organize relevant documentation",
			"Research applicable laws",
			"Consider time limitations",
		},
		Resources: []Link{
			{Name: "Legal Aid Directory", URL: "/directory/legal-aid"},
			{Name: "Attorney Referral Service", URL: "/directory/attorney-referral"},
			{Name: "Self-Help Legal Resources", URL: "/resources/self-help"},
		},
		Cost:       CostRange{MinUSD: 100, MaxUSD: 500},
		Timeline:   TimelineRange{MinDays: 0, MaxDays: 0},
		Complexity: ComplexityMedium,
	}
}
