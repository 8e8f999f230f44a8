package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
	"github.com/custodia-labs/qalint/internal/logger"
)

// Ensure FormatService implements the interface.
var _ driving.FormatService = (*FormatService)(nil)

// ordinalPrefix matches the number at the start of an entry line.
var ordinalPrefix = regexp.MustCompile(`^( {0,3})(\d{1,9})([.)])`)

// FormatService rewrites documents in place.
type FormatService struct {
	parser   driven.Parser
	settings driving.SettingsService
}

// NewFormatService creates a new format service.
func NewFormatService(parser driven.Parser, settings driving.SettingsService) *FormatService {
	return &FormatService{parser: parser, settings: settings}
}

// Renumber rewrites entry ordinals to 1..N in document order.
// Only the digits of entry lines change; every other byte is preserved.
func (s *FormatService) Renumber(ctx context.Context, source string, content []byte) ([]byte, int, error) {
	settings := domain.DefaultSettings()
	if s.settings != nil {
		current, err := s.settings.Get()
		if err != nil {
			return nil, 0, fmt.Errorf("load settings: %w", err)
		}
		settings = *current
	}

	result, err := s.parser.Parse(ctx, &domain.RawDocument{URI: source, Content: content}, &settings)
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", source, err)
	}

	lines := bytes.Split(content, []byte("\n"))
	changed := 0
	for i, entry := range result.Document.Entries() {
		want := i + 1
		if entry.Ordinal == want {
			continue
		}
		idx := entry.Line - 1
		if idx < 0 || idx >= len(lines) {
			return nil, 0, fmt.Errorf("%w: entry %d points past the end of %s", domain.ErrInvalidInput, entry.Ordinal, source)
		}
		m := ordinalPrefix.FindSubmatchIndex(lines[idx])
		if m == nil {
			return nil, 0, fmt.Errorf("%w: line %d of %s is not an entry", domain.ErrInvalidInput, entry.Line, source)
		}
		var b bytes.Buffer
		b.Write(lines[idx][:m[4]])
		b.WriteString(strconv.Itoa(want))
		b.Write(lines[idx][m[5]:])
		lines[idx] = b.Bytes()
		changed++
		logger.Debug("line %d: %d -> %d", entry.Line, entry.Ordinal, want)
	}

	return bytes.Join(lines, []byte("\n")), changed, nil
}
