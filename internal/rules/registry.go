package rules

import (
	"fmt"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

// Dependencies are the optional collaborators rules may need.
type Dependencies struct {
	// Diagrams maps grammar names ("mermaid") to grammars.
	Diagrams map[string]driven.DiagramGrammar

	// Syntax checks code samples. May be nil.
	Syntax driven.SyntaxChecker
}

// BuilderFunc creates a Rule from its dependencies.
type BuilderFunc func(deps Dependencies) (driven.Rule, error)

// Registry maps rule ids to their builders.
type Registry struct {
	builders map[domain.RuleID]BuilderFunc
}

// NewRegistry creates a new rule registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.RuleID]BuilderFunc),
	}
}

// Register adds a rule builder to the registry.
// The id should match the rule's ID() return value.
func (r *Registry) Register(id domain.RuleID, builder BuilderFunc) {
	r.builders[id] = builder
}

// Build creates a rule by id.
// Returns an error wrapping domain.ErrUnknownRule if the id is not registered.
func (r *Registry) Build(id domain.RuleID, deps Dependencies) (driven.Rule, error) {
	builder, ok := r.builders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRule, id)
	}
	return builder(deps)
}

// Has returns true if a rule with the given id is registered.
func (r *Registry) Has(id domain.RuleID) bool {
	_, ok := r.builders[id]
	return ok
}

// IDs returns the registered rule ids in pipeline order.
func (r *Registry) IDs() []domain.RuleID {
	ids := make([]domain.RuleID, 0, len(r.builders))
	for _, id := range domain.AllRules() {
		if r.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// BuildAll creates every registered rule in pipeline order.
func (r *Registry) BuildAll(deps Dependencies) ([]driven.Rule, error) {
	ids := r.IDs()
	built := make([]driven.Rule, 0, len(ids))
	for _, id := range ids {
		rule, err := r.Build(id, deps)
		if err != nil {
			return nil, fmt.Errorf("build rule %s: %w", id, err)
		}
		built = append(built, rule)
	}
	return built, nil
}
