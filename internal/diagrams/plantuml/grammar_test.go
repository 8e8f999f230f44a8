package plantuml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qalint/internal/core/ports/driven"
)

func TestGrammar_Validate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantErr  bool
		wantLine int
	}{
		{name: "sequence", source: "@startuml\nAlice -> Bob: hi\n@enduml"},
		{name: "comments and title", source: "' header comment\n@startuml demo\ntitle Demo\nA -> B\n@enduml\n"},
		{name: "mindmap", source: "@startmindmap\n* root\n** child\n@endmindmap"},
		{name: "empty", source: "\n\n", wantErr: true, wantLine: 0},
		{name: "missing start", source: "A -> B\n@enduml", wantErr: true, wantLine: 1},
		{name: "missing end", source: "@startuml\nA -> B", wantErr: true, wantLine: 1},
		{name: "empty body", source: "@startuml\n@enduml", wantErr: true, wantLine: 2},
		{name: "mismatched end", source: "@startuml\nA -> B\n@endmindmap", wantErr: true, wantLine: 3},
		{name: "nested start", source: "@startuml\n@startuml\n@enduml", wantErr: true, wantLine: 2},
		{name: "content after end", source: "@startuml\nA -> B\n@enduml\nC -> D", wantErr: true, wantLine: 4},
	}

	g := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate(tt.source)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var gerr *driven.GrammarError
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.wantLine, gerr.Line)
		})
	}
}

func TestGrammar_Name(t *testing.T) {
	assert.Equal(t, "plantuml", New().Name())
}
