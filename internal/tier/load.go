package tier

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/plugrid/internal/ctxlog"
)

// hclCatalogFile is the top-level structure of a tier catalog file.
type hclCatalogFile struct {
	Tiers []*hclTier `hcl:"tier,block"`
}

type hclTier struct {
	Name       string         `hcl:"name,label"`
	Range      []int          `hcl:"range"`
	DependsOn  []string       `hcl:"depends_on,optional"`
	Categories []*hclCategory `hcl:"category,block"`
}

type hclCategory struct {
	Name  string `hcl:"name,label"`
	Range []int  `hcl:"range"`
}

// LoadFile parses a tier catalog from a single HCL file and validates it.
func LoadFile(ctx context.Context, filePath string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading tier catalog...", "file", filePath)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse tier catalog %s: %w", filePath, diags)
	}

	var parsedFile hclCatalogFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode tier catalog %s: %w", filePath, diags)
	}

	tiers := make([]Tier, 0, len(parsedFile.Tiers))
	for _, raw := range parsedFile.Tiers {
		t, err := translateTier(raw, filePath)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}

	catalog, err := NewCatalog(tiers)
	if err != nil {
		return nil, fmt.Errorf("invalid tier catalog %s: %w", filePath, err)
	}

	logger.Info("Tier catalog loaded.", "tiers", len(tiers))
	return catalog, nil
}

// translateTier converts the HCL-specific schema into the agnostic model.
func translateTier(raw *hclTier, source string) (Tier, error) {
	r, err := translateRange(raw.Range)
	if err != nil {
		return Tier{}, fmt.Errorf("tier %q in %s: %w", raw.Name, source, err)
	}

	t := Tier{
		Name:      raw.Name,
		Range:     r,
		DependsOn: raw.DependsOn,
	}
	for _, cat := range raw.Categories {
		cr, err := translateRange(cat.Range)
		if err != nil {
			return Tier{}, fmt.Errorf("category %q of tier %q in %s: %w", cat.Name, raw.Name, source, err)
		}
		t.Categories = append(t.Categories, Category{Name: cat.Name, Range: cr})
	}
	return t, nil
}

func translateRange(values []int) (Range, error) {
	if len(values) != 2 {
		return Range{}, fmt.Errorf("range must be a two-element list [low, high], got %d elements", len(values))
	}
	return Range{Low: values[0], High: values[1]}, nil
}
