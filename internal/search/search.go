// Package search implements free-text filtering of assets.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/nexa-assets/nexa/pkg/model"
)

// Field names one searchable string on an asset.
type Field struct {
	Name  string
	Value func(a *model.Asset) string
}

// AssetFields is the fixed set of fields a search term is matched against.
// Signature blobs are deliberately absent.
var AssetFields = []Field{
	{"id", func(a *model.Asset) string { return a.ID }},
	{"assetTag", func(a *model.Asset) string { return a.AssetTag }},
	{"name", func(a *model.Asset) string { return a.Name }},
	{"category", func(a *model.Asset) string { return string(a.Category) }},
	{"status", func(a *model.Asset) string { return string(a.Status) }},
	{"purchaseDate", func(a *model.Asset) string { return a.PurchaseDate }},
	{"reimageDate", func(a *model.Asset) string { return a.ReimageDate }},
	{"department", func(a *model.Asset) string { return a.Department }},
	{"location", func(a *model.Asset) string { return a.Location }},
	{"description", func(a *model.Asset) string { return a.Description }},
	{"serialNumber", func(a *model.Asset) string { return a.SerialNumber }},
	{"assignedTo.name", func(a *model.Asset) string { return a.AssignedTo.Name }},
	{"assignedTo.email", func(a *model.Asset) string { return a.AssignedTo.Email }},
}

// Matcher does case-insensitive substring matching against one term.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	caser  cases.Caser
	needle string
}

// NewMatcher prepares term for matching. A blank term matches everything;
// any other term is matched as typed, surrounding spaces included.
func NewMatcher(term string) *Matcher {
	m := &Matcher{caser: cases.Fold()}
	if strings.TrimSpace(term) != "" {
		m.needle = m.fold(term)
	}
	return m
}

func (m *Matcher) fold(s string) string {
	return m.caser.String(norm.NFC.String(s))
}

// Empty reports whether the term matches everything.
func (m *Matcher) Empty() bool {
	return m.needle == ""
}

// Match reports whether s contains the term, ignoring case.
func (m *Matcher) Match(s string) bool {
	if m.needle == "" {
		return true
	}
	if s == "" {
		return false
	}
	return strings.Contains(m.fold(s), m.needle)
}

// MatchAny reports whether any of values contains the term.
func (m *Matcher) MatchAny(values ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, v := range values {
		if m.Match(v) {
			return true
		}
	}
	return false
}

// MatchAsset reports whether any searchable field of a contains the term.
func (m *Matcher) MatchAsset(a *model.Asset) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range AssetFields {
		if m.Match(f.Value(a)) {
			return true
		}
	}
	return false
}

// MatchedFields returns the names of the fields that contain the term.
func (m *Matcher) MatchedFields(a *model.Asset) []string {
	if m.needle == "" {
		return nil
	}
	var names []string
	for _, f := range AssetFields {
		if m.Match(f.Value(a)) {
			names = append(names, f.Name)
		}
	}
	return names
}

// Assets returns the assets matching term, in their original order.
// An empty or blank term returns every asset.
func Assets(assets []model.Asset, term string) []model.Asset {
	m := NewMatcher(term)
	if m.Empty() {
		out := make([]model.Asset, len(assets))
		copy(out, assets)
		return out
	}
	out := make([]model.Asset, 0, len(assets))
	for i := range assets {
		if m.MatchAsset(&assets[i]) {
			out = append(out, assets[i])
		}
	}
	return out
}

// Options narrows a listing beyond the free-text term.
type Options struct {
	Term       string
	Status     model.AssetStatus
	Category   model.AssetCategory
	Department string
	Unassigned bool
}

// Filter applies the term and every non-zero option, preserving order.
func Filter(assets []model.Asset, opts Options) []model.Asset {
	m := NewMatcher(opts.Term)
	dept := NewMatcher(opts.Department)
	out := make([]model.Asset, 0, len(assets))
	for i := range assets {
		a := &assets[i]
		if opts.Status != "" && a.Status != opts.Status {
			continue
		}
		if opts.Category != "" && a.Category != opts.Category {
			continue
		}
		if !dept.Empty() && !dept.Match(a.Department) {
			continue
		}
		if opts.Unassigned && !a.AssignedTo.IsZero() {
			continue
		}
		if !m.MatchAsset(a) {
			continue
		}
		out = append(out, *a)
	}
	return out
}
