package registryclient

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"resty.dev/v3"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/manifest"
)

// indexPath is the well-known location of the plugin index document,
// relative to the registry base URL.
const indexPath = "/index.json"

// Client fetches plugin manifests from a remote plugin registry. The
// registry serves a single JSON index document:
//
//	{
//	  "plugins": [
//	    {
//	      "id": "asset-cache",
//	      "priority": 5100,
//	      "version": "1.4.0",
//	      "tier": "Essential",
//	      "dependencies": [
//	        {"id": "event-bus", "optional": false, "constraint": ">=2.0.0"}
//	      ]
//	    }
//	  ]
//	}
type Client struct {
	baseURL string
	http    *resty.Client
}

// New creates a client for the registry at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    resty.New().SetBaseURL(baseURL),
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// FetchIndex downloads and decodes the registry's plugin index. The returned
// manifests carry the index URL as their Source.
func (c *Client) FetchIndex(ctx context.Context) ([]*manifest.Plugin, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Fetching plugin index from registry...", "url", c.baseURL)

	res, err := c.http.R().SetContext(ctx).Get(indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plugin index from %s: %w", c.baseURL, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("registry %s returned status %d for %s", c.baseURL, res.StatusCode(), indexPath)
	}

	plugins, err := decodeIndex(res.String(), c.baseURL+indexPath)
	if err != nil {
		return nil, err
	}

	logger.Info("Plugin index fetched.", "url", c.baseURL, "count", len(plugins))
	return plugins, nil
}

// decodeIndex translates the JSON index document into manifest models.
func decodeIndex(body, source string) ([]*manifest.Plugin, error) {
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("registry index at %s is not valid JSON", source)
	}

	entries := gjson.Get(body, "plugins")
	if !entries.Exists() || !entries.IsArray() {
		return nil, fmt.Errorf("registry index at %s has no \"plugins\" array", source)
	}

	var plugins []*manifest.Plugin
	var decodeErr error
	entries.ForEach(func(_, entry gjson.Result) bool {
		id := entry.Get("id").String()
		if id == "" {
			decodeErr = fmt.Errorf("registry index at %s contains a plugin with an empty id", source)
			return false
		}

		priority := manifest.PriorityUnset
		if p := entry.Get("priority"); p.Exists() {
			priority = int(p.Int())
		}

		plugin := &manifest.Plugin{
			ID:       id,
			Priority: priority,
			Version:  entry.Get("version").String(),
			Tier:     entry.Get("tier").String(),
			Source:   source,
		}
		entry.Get("dependencies").ForEach(func(_, dep gjson.Result) bool {
			plugin.Dependencies = append(plugin.Dependencies, manifest.Dependency{
				ID:         dep.Get("id").String(),
				Optional:   dep.Get("optional").Bool(),
				Constraint: dep.Get("constraint").String(),
			})
			return true
		})
		plugins = append(plugins, plugin)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return plugins, nil
}
