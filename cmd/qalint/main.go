// Command qalint validates interview-style Q&A Markdown documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/qalint/cgo/treesitter"
	"github.com/custodia-labs/qalint/internal/adapters/driven/config/file"
	"github.com/custodia-labs/qalint/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/qalint/internal/adapters/driving/cli"
	"github.com/custodia-labs/qalint/internal/connectors/filesystem"
	"github.com/custodia-labs/qalint/internal/connectors/github"
	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/core/services"
	"github.com/custodia-labs/qalint/internal/diagrams"
	"github.com/custodia-labs/qalint/internal/logger"
	"github.com/custodia-labs/qalint/internal/parser/markdown"
	"github.com/custodia-labs/qalint/internal/rules"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(context.Background()); err != nil {
		// Violations were already printed.
		if !errors.Is(err, domain.ErrViolationsFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// bootstrap wires adapters and services for one command invocation.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	token := settings.GitHubToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	loaders := []driven.DocumentLoader{
		filesystem.NewLoader(),
		github.NewLoader(github.NewClient(ctx, token)),
	}

	syntax := treesitter.New()
	if settings.CodeSyntax && !syntax.Available() {
		logger.WarnOnce("code-syntax", "rules.code_syntax is set but this build has no tree-sitter grammars")
	}
	pipeline, err := rules.NewDefaultPipeline(rules.Dependencies{
		Diagrams: diagrams.Defaults(),
		Syntax:   syntax,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build rules: %w", err)
	}

	parser := markdown.New()
	svcs := &cli.Services{
		Validation: services.NewValidationService(parser, pipeline, settingsService, loaders...),
		Settings:   settingsService,
		Format:     services.NewFormatService(parser, settingsService),
		NewWatcher: func() driven.DocumentWatcher { return filesystem.NewWatcher() },
	}

	// History is optional; validation still works without the database.
	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		logger.Warn("history unavailable: %v", err)
		return svcs, nil, nil
	}
	svcs.History = services.NewHistoryService(store.RunStore())

	return svcs, store.Close, nil
}
