package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nexa-assets/nexa/internal/search"
	"github.com/nexa-assets/nexa/pkg/color"
	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/model"
)

// suggestAssets returns a "Did you mean" hint for an unknown asset reference.
func suggestAssets(ref string, assets []model.Asset) string {
	if len(assets) == 0 {
		return "No assets exist yet."
	}

	lower := strings.ToLower(ref)
	var matches []string
	for _, a := range assets {
		if strings.HasPrefix(strings.ToLower(a.AssetTag), lower) || strings.HasPrefix(a.ID, ref) {
			matches = append(matches, describeMatch(&a))
		}
	}

	// Fall back to a free-text search
	if len(matches) == 0 {
		for _, a := range search.Assets(assets, ref) {
			matches = append(matches, describeMatch(&a))
		}
	}

	if len(matches) > 3 {
		matches = matches[:3]
	}
	if len(matches) > 0 {
		hint := "Did you mean"
		if len(matches) > 1 {
			hint += " one of"
		}
		return fmt.Sprintf("%s: %s?", hint, strings.Join(matches, ", "))
	}

	return fmt.Sprintf("Run %s to see available assets.", color.Header("nexa asset list"))
}

func describeMatch(a *model.Asset) string {
	return fmt.Sprintf("%s (%s)", color.Tag(a.AssetTag), a.Name)
}

// notFoundWithHint appends a suggestion to NotFound errors.
func notFoundWithHint(err error, ref string, assets []model.Asset) error {
	if !errors.Is(err, errclass.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w\n%s", err, suggestAssets(ref, assets))
}
