package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/internal/inventory"
	"github.com/nexa-assets/nexa/internal/kvstore"
	"github.com/nexa-assets/nexa/pkg/fsutil"
	"github.com/nexa-assets/nexa/pkg/model"
)

// Severities, most severe first. Critical and error findings make the result
// unhealthy.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Finding represents a detected issue.
type Finding struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Path        string `json:"path,omitempty"`
}

// Result contains doctor check results.
type Result struct {
	Healthy  bool      `json:"healthy"`
	Findings []Finding `json:"findings"`
}

func (r *Result) add(f Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity == SeverityCritical || f.Severity == SeverityError {
		r.Healthy = false
	}
}

// Doctor performs data health checks.
type Doctor struct {
	store   kvstore.Store
	journal *audit.Journal
	dataDir string
}

// NewDoctor creates a doctor. journal and dataDir are optional; the checks
// that need them are skipped when absent.
func NewDoctor(store kvstore.Store, journal *audit.Journal, dataDir string) *Doctor {
	return &Doctor{store: store, journal: journal, dataDir: dataDir}
}

// Check runs all diagnostic checks. Strict mode also verifies the journal
// hash chain.
func (d *Doctor) Check(ctx context.Context, strict bool) (*Result, error) {
	result := &Result{Healthy: true, Findings: []Finding{}}

	// 1. Asset document
	var assets []model.Asset
	if ok := d.readDocument(ctx, result, inventory.AssetsKey, &assets); ok {
		d.checkAssets(result, assets)
	}

	// 2. User document
	var users []model.AppUser
	if ok := d.readDocument(ctx, result, inventory.UsersKey, &users); ok {
		d.checkUsers(result, users)
	}

	// 3. Journal chain
	if strict && d.journal != nil {
		d.checkJournal(result)
	}

	// 4. Orphan tmp files
	if d.dataDir != "" {
		d.checkOrphanTmp(result)
	}

	return result, nil
}

func (d *Doctor) readDocument(ctx context.Context, result *Result, key string, v any) bool {
	data, err := d.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		result.add(Finding{
			Category:    "storage",
			Description: fmt.Sprintf("%s not stored yet, seed data will be used", key),
			Severity:    SeverityInfo,
		})
		return false
	}
	if err != nil {
		result.add(Finding{
			Category:    "storage",
			Description: fmt.Sprintf("cannot read %s: %v", key, err),
			Severity:    SeverityCritical,
		})
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		result.add(Finding{
			Category:    "storage",
			Description: fmt.Sprintf("%s is not valid JSON and will be replaced by seed data on next load: %v", key, err),
			Severity:    SeverityError,
		})
		return false
	}
	return true
}

func (d *Doctor) checkAssets(result *Result, assets []model.Asset) {
	ids := make(map[string]int)
	tags := make(map[string]int)
	for i := range assets {
		a := assets[i]
		ids[a.ID]++
		if a.AssetTag != "" {
			tags[strings.ToUpper(a.AssetTag)]++
		}

		if a.ID == "" {
			result.add(Finding{Category: "asset", Description: fmt.Sprintf("asset %q has no id", a.Name), Severity: SeverityError})
		}
		if err := inventory.Validate(&a); err != nil {
			result.add(Finding{Category: "asset", Description: fmt.Sprintf("asset %s: %v", a.ID, err), Severity: SeverityWarning})
		}
		d.checkAuditLog(result, &a)

		if a.AssignmentSignature != "" && a.Status != model.StatusAssigned {
			result.add(Finding{
				Category:    "signature",
				Description: fmt.Sprintf("asset %s has an assignment signature but status %s", a.ID, a.Status),
				Severity:    SeverityInfo,
			})
		}
		if a.DisposalSignature != "" && a.Status != model.StatusDisposed {
			result.add(Finding{
				Category:    "signature",
				Description: fmt.Sprintf("asset %s has a disposal signature but status %s", a.ID, a.Status),
				Severity:    SeverityInfo,
			})
		}
	}

	for id, n := range ids {
		if n > 1 && id != "" {
			result.add(Finding{
				Category:    "asset",
				Description: fmt.Sprintf("id %s is used by %d assets", id, n),
				Severity:    SeverityCritical,
			})
		}
	}
	for tag, n := range tags {
		if n > 1 {
			result.add(Finding{
				Category:    "asset",
				Description: fmt.Sprintf("tag %s is used by %d assets", tag, n),
				Severity:    SeverityWarning,
			})
		}
	}
}

func (d *Doctor) checkAuditLog(result *Result, a *model.Asset) {
	if len(a.AuditLog) == 0 {
		result.add(Finding{
			Category:    "audit",
			Description: fmt.Sprintf("asset %s has an empty audit log", a.ID),
			Severity:    SeverityWarning,
		})
		return
	}
	for i := 1; i < len(a.AuditLog); i++ {
		if a.AuditLog[i].Time().After(a.AuditLog[i-1].Time()) {
			result.add(Finding{
				Category:    "audit",
				Description: fmt.Sprintf("asset %s audit log is not newest first at entry %s", a.ID, a.AuditLog[i].ID),
				Severity:    SeverityWarning,
			})
			return
		}
	}
	if last := a.AuditLog[len(a.AuditLog)-1]; last.Action != model.ActionCreated {
		result.add(Finding{
			Category:    "audit",
			Description: fmt.Sprintf("asset %s oldest audit entry is %s, not Created", a.ID, last.Action),
			Severity:    SeverityInfo,
		})
	}
}

func (d *Doctor) checkUsers(result *Result, users []model.AppUser) {
	emails := make(map[string]int)
	for _, u := range users {
		if u.Email != "" {
			emails[strings.ToLower(u.Email)]++
		}
		if !u.Role.Valid() {
			result.add(Finding{
				Category:    "user",
				Description: fmt.Sprintf("user %s has unknown role %q", u.ID, u.Role),
				Severity:    SeverityWarning,
			})
		}
	}
	for email, n := range emails {
		if n > 1 {
			result.add(Finding{
				Category:    "user",
				Description: fmt.Sprintf("email %s is shared by %d users, none of them can sign in", email, n),
				Severity:    SeverityWarning,
			})
		}
	}
}

func (d *Doctor) checkJournal(result *Result) {
	res, err := d.journal.Verify()
	if err == nil {
		return
	}
	desc := err.Error()
	if res == nil {
		desc = fmt.Sprintf("cannot verify journal: %v", err)
	}
	result.add(Finding{
		Category:    "journal",
		Description: desc,
		Severity:    SeverityError,
		Path:        d.journal.Path(),
	})
}

func (d *Doctor) checkOrphanTmp(result *Result) {
	names, err := fsutil.OrphanTmpFiles(d.dataDir)
	if err != nil {
		return
	}
	for _, name := range names {
		result.add(Finding{
			Category:    "tmp",
			Description: fmt.Sprintf("orphan temp file: %s", name),
			Severity:    SeverityInfo,
			Path:        filepath.Join(d.dataDir, name),
		})
	}
}
