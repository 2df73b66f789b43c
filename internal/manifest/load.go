package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/fsutil"
)

// hclManifestFile is the top-level structure of a plugin manifest file,
// expecting one or more 'plugin' blocks.
type hclManifestFile struct {
	Plugins []*hclPlugin `hcl:"plugin,block"`
}

type hclPlugin struct {
	ID           string           `hcl:"id,label"`
	Priority     *int             `hcl:"priority,optional"`
	Version      string           `hcl:"version,optional"`
	Tier         string           `hcl:"tier,optional"`
	Dependencies []*hclDependency `hcl:"dependency,block"`
}

type hclDependency struct {
	ID         string `hcl:"id,label"`
	Optional   bool   `hcl:"optional,optional"`
	Constraint string `hcl:"constraint,optional"`
}

// LoadDir recursively discovers every .hcl file under pluginsPath and decodes
// the plugin blocks found inside. Files are visited in sorted path order so
// the returned slice is stable across runs.
func LoadDir(ctx context.Context, pluginsPath string) ([]*Plugin, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading plugin manifests...", "path", pluginsPath)

	filePaths, err := fsutil.FindFilesByExtension(pluginsPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk plugins path %s: %w", pluginsPath, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", pluginsPath)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var plugins []*Plugin
	for _, filePath := range filePaths {
		decoded, err := loadFile(filePath, parser)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, decoded...)
		logger.Debug("Loaded manifests from file", "file", filePath, "count", len(decoded))
	}

	logger.Info("Plugin manifests loaded.", "count", len(plugins), "files", len(filePaths))
	return plugins, nil
}

// loadFile parses a single HCL file and translates its plugin blocks into
// the agnostic model.
func loadFile(filePath string, parser *hclparse.Parser) ([]*Plugin, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsedFile hclManifestFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest file %s: %w", filePath, diags)
	}

	plugins := make([]*Plugin, 0, len(parsedFile.Plugins))
	for _, raw := range parsedFile.Plugins {
		p, err := translatePlugin(raw, filePath)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// translatePlugin converts the HCL-specific schema into the agnostic model.
func translatePlugin(raw *hclPlugin, source string) (*Plugin, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("manifest in %s declares a plugin with an empty id", source)
	}

	priority := PriorityUnset
	if raw.Priority != nil {
		priority = *raw.Priority
	}

	p := &Plugin{
		ID:       raw.ID,
		Priority: priority,
		Version:  raw.Version,
		Tier:     raw.Tier,
		Source:   source,
	}
	for _, dep := range raw.Dependencies {
		if dep.ID == "" {
			return nil, fmt.Errorf("plugin %q in %s declares a dependency with an empty id", raw.ID, source)
		}
		p.Dependencies = append(p.Dependencies, Dependency{
			ID:         dep.ID,
			Optional:   dep.Optional,
			Constraint: dep.Constraint,
		})
	}
	return p, nil
}
