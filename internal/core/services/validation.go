package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/core/ports/driving"
	"github.com/custodia-labs/qalint/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService parses documents and runs the rule pipeline over them.
type ValidationService struct {
	parser   driven.Parser
	pipeline driven.RulePipeline
	settings driving.SettingsService
	loaders  []driven.DocumentLoader
	now      func() time.Time
}

// NewValidationService creates a new validation service.
// The settings service is optional; defaults are used when nil.
// Loaders are consulted in order, the first that supports a reference wins.
func NewValidationService(
	parser driven.Parser,
	pipeline driven.RulePipeline,
	settings driving.SettingsService,
	loaders ...driven.DocumentLoader,
) *ValidationService {
	return &ValidationService{
		parser:   parser,
		pipeline: pipeline,
		settings: settings,
		loaders:  loaders,
		now:      time.Now,
	}
}

// Validate parses content and returns every violation found.
func (s *ValidationService) Validate(ctx context.Context, source string, content []byte) (*domain.Report, error) {
	logger.Section("Validate " + source)
	start := time.Now()
	defer logger.Elapsed("validate "+source, start)

	settings, err := s.currentSettings()
	if err != nil {
		return nil, err
	}

	result, err := s.parse(ctx, source, content, settings)
	if err != nil {
		return nil, err
	}

	// Structural violations come from the parser; they obey the same
	// disable switches as pipeline rules.
	violations := make([]domain.Violation, 0, len(result.Violations))
	for _, v := range result.Violations {
		if settings.RuleEnabled(v.Rule) {
			violations = append(violations, v)
		}
	}

	found, err := s.pipeline.Run(ctx, &result.Document, settings)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", source, err)
	}
	violations = append(violations, found...)
	domain.SortViolations(violations)

	report := &domain.Report{
		ID:         uuid.NewString(),
		Source:     source,
		CheckedAt:  s.now().UTC(),
		Sections:   len(result.Document.Sections),
		Entries:    result.Document.EntryCount(),
		Violations: violations,
	}
	logger.Info("%s: %d sections, %d entries, %d violations",
		source, report.Sections, report.Entries, len(report.Violations))
	return report, nil
}

// ValidateSource loads a document through the first matching loader and validates it.
func (s *ValidationService) ValidateSource(ctx context.Context, ref string) (*domain.Report, error) {
	raw, err := s.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, raw.URI, raw.Content)
}

// ValidateBatch validates documents concurrently.
// The first unreadable source cancels the rest of the batch.
func (s *ValidationService) ValidateBatch(ctx context.Context, refs []string) ([]*domain.Report, error) {
	settings, err := s.currentSettings()
	if err != nil {
		return nil, err
	}
	limit := settings.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	logger.Debug("Batch of %d sources, concurrency %d", len(refs), limit)

	reports := make([]*domain.Report, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			report, err := s.ValidateSource(gctx, ref)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Expand resolves references that name many documents, such as a
// directory or a repository, into one reference per document.
// References no loader can expand pass through unchanged.
func (s *ValidationService) Expand(ctx context.Context, refs []string) ([]string, error) {
	var out []string
	for _, ref := range refs {
		expanded, err := s.expand(ctx, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	logger.Debug("Expanded %d references into %d documents", len(refs), len(out))
	return out, nil
}

func (s *ValidationService) expand(ctx context.Context, ref string) ([]string, error) {
	for _, loader := range s.loaders {
		if !loader.Supports(ref) {
			continue
		}
		expander, ok := loader.(driven.RefExpander)
		if !ok {
			return []string{ref}, nil
		}
		refs, err := expander.Expand(ctx, ref)
		if err != nil {
			if errors.Is(err, domain.ErrSourceUnreadable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, ref, err)
		}
		return refs, nil
	}
	return []string{ref}, nil
}

// Load reads a document by reference.
func (s *ValidationService) Load(ctx context.Context, ref string) (*domain.RawDocument, error) {
	for _, loader := range s.loaders {
		if !loader.Supports(ref) {
			continue
		}
		logger.Debug("Loading %s with %s loader", ref, loader.Name())
		raw, err := loader.Load(ctx, ref)
		if err != nil {
			if errors.Is(err, domain.ErrSourceUnreadable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, ref, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, ref)
}

// Parse returns the document structure without running rules.
func (s *ValidationService) Parse(ctx context.Context, source string, content []byte) (*domain.Document, error) {
	settings, err := s.currentSettings()
	if err != nil {
		return nil, err
	}
	result, err := s.parse(ctx, source, content, settings)
	if err != nil {
		return nil, err
	}
	return &result.Document, nil
}

func (s *ValidationService) parse(
	ctx context.Context, source string, content []byte, settings *domain.Settings,
) (*driven.ParseResult, error) {
	raw := &domain.RawDocument{URI: source, Content: content}
	result, err := s.parser.Parse(ctx, raw, settings)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	result.Document.Source = source
	return result, nil
}

func (s *ValidationService) currentSettings() (*domain.Settings, error) {
	if s.settings == nil {
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}
