// Package diagrams wires the built-in diagram grammars.
package diagrams

import (
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/diagrams/graphviz"
	"github.com/custodia-labs/qalint/internal/diagrams/mermaid"
	"github.com/custodia-labs/qalint/internal/diagrams/plantuml"
)

// Defaults returns the built-in grammars keyed by grammar name.
// Names match domain.DiagramGrammar.
func Defaults() map[string]driven.DiagramGrammar {
	grammars := []driven.DiagramGrammar{
		mermaid.New(),
		graphviz.New(),
		plantuml.New(),
	}
	out := make(map[string]driven.DiagramGrammar, len(grammars))
	for _, g := range grammars {
		out[g.Name()] = g
	}
	return out
}
