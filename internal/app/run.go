package app

import (
	"context"
	"fmt"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/manifest"
	"github.com/vk/plugrid/internal/registryclient"
	"github.com/vk/plugrid/internal/report"
	"github.com/vk/plugrid/internal/resolve"
	"github.com/vk/plugrid/internal/tier"
)

// Run executes the main application logic: load the tier catalog, gather
// manifests from every configured source, resolve, and report.
//
// Issues are advisory by default: the order (when one exists) is printed
// alongside them and Run returns nil. A circular dependency leaves no order
// to act on, so it always fails the run; with Strict, any issue does.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	catalog, err := tier.LoadFile(ctx, a.config.TiersPath)
	if err != nil {
		return fmt.Errorf("failed to load tier catalog: %w", err)
	}

	manifests, err := a.gatherManifests(ctx)
	if err != nil {
		return err
	}

	result, err := resolve.Resolve(ctx, manifests, catalog)
	if err != nil {
		return err
	}

	report.NewWriter(a.outW, a.config.NoColor).Write(result)

	if a.config.Strict && len(result.Issues) > 0 {
		return fmt.Errorf("strict mode: resolution reported %d issue(s)", len(result.Issues))
	}
	if result.HasCycle() {
		return fmt.Errorf("resolution blocked by circular dependencies")
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// gatherManifests merges every configured manifest source into one set.
func (a *App) gatherManifests(ctx context.Context) ([]*manifest.Plugin, error) {
	var manifests []*manifest.Plugin

	if a.config.PluginsPath != "" {
		local, err := manifest.LoadDir(ctx, a.config.PluginsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load plugin manifests: %w", err)
		}
		manifests = append(manifests, local...)
	}

	if a.config.RegistryURL != "" {
		client := registryclient.New(a.config.RegistryURL)
		defer func() { _ = client.Close() }()
		remote, err := client.FetchIndex(ctx)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, remote...)
	}

	return manifests, nil
}
