package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-assets/nexa/internal/assist"
	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/model"
)

func executeCommand(root *cobra.Command, args ...string) (stdout string, err error) {
	// Capture os.Stdout since CLI uses fmt.Printf directly
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	root.SetArgs(args)
	err = root.Execute()

	w.Close()
	<-done
	os.Stdout = oldStdout
	return buf.String(), err
}

// resetFlags restores every flag to its default so state from one Execute
// does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func createTestRootCmd() *cobra.Command {
	resetFlags(rootCmd)
	rootCmd.SetIn(nil)
	return rootCmd
}

// testEnv isolates a test in its own data directory with no API key.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("NEXA_DATA_DIR", "")
	for _, k := range assist.APIKeyEnvVars {
		t.Setenv(k, "")
	}
	return t.TempDir()
}

// run executes a command against dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := createTestRootCmd()
	return executeCommand(cmd, append([]string{"--data-dir", dir, "--no-color"}, args...)...)
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "nexa %s", strings.Join(args, " "))
	return out
}

func listAssets(t *testing.T, dir string) []model.Asset {
	t.Helper()
	var assets []model.Asset
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--json", "asset", "list")), &assets))
	return assets
}

func TestRootCommand_Help(t *testing.T) {
	cmd := createTestRootCmd()
	stdout, err := executeCommand(cmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "IT asset inventory")
}

func TestRootCommand_JSONFlag(t *testing.T) {
	cmd := createTestRootCmd()
	_, err := executeCommand(cmd, "--json", "--help")
	require.NoError(t, err)
	assert.True(t, jsonOutput)
}

func TestAssetList_SeedData(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "asset", "list")
	assert.Contains(t, out, "TAG-1001")
	assert.Contains(t, out, "Dell Latitude 7440")
	assert.Contains(t, out, "4 asset(s)")
}

func TestAssetList_Filters(t *testing.T) {
	dir := testEnv(t)

	out := mustRun(t, dir, "asset", "list", "--search", "maria")
	assert.Contains(t, out, "TAG-1001")
	assert.NotContains(t, out, "TAG-1002")

	out = mustRun(t, dir, "asset", "list", "--status", "in repair")
	assert.Contains(t, out, "TAG-1004")
	assert.Contains(t, out, "1 asset(s)")

	_, err := run(t, dir, "asset", "list", "--status", "misplaced")
	assert.Error(t, err)
}

func TestAssetAdd_PrependsAndPersists(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "asset", "add", "--name", "ThinkPad X1", "--tag", "TAG-2001",
		"--category", "laptop", "--value", "1800", "--purchase-date", "2024-03-01")
	assert.Contains(t, out, "Created asset TAG-2001")

	assets := listAssets(t, dir)
	require.Len(t, assets, 5)
	first := assets[0]
	assert.Equal(t, "TAG-2001", first.AssetTag)
	assert.Equal(t, model.StatusInStock, first.Status)
	assert.Equal(t, 1800.0, first.Value)
	require.Len(t, first.AuditLog, 1)
	assert.Equal(t, model.ActionCreated, first.AuditLog[0].Action)
	assert.Equal(t, model.UnknownUser, first.AuditLog[0].User)

	_, err := os.Stat(filepath.Join(dir, "audit.jsonl"))
	assert.NoError(t, err, "journal written")
}

func TestAssetAdd_GeneratesTag(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "asset", "add", "--name", "Spare Monitor", "--category", "monitor")
	assets := listAssets(t, dir)
	assert.Regexp(t, `^TAG-\d{4}$`, assets[0].AssetTag)
}

func TestAssetAdd_Invalid(t *testing.T) {
	dir := testEnv(t)
	_, err := run(t, dir, "asset", "add", "--name", "Bad", "--value", "-5")
	assert.ErrorIs(t, err, errclass.ErrInvalidAsset)

	_, err = run(t, dir, "asset", "add", "--name", "Bad", "--purchase-date", "03/01/2024")
	assert.ErrorIs(t, err, errclass.ErrInvalidAsset)

	assert.Len(t, listAssets(t, dir), 4, "nothing written")
}

func TestAssetShow(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "asset", "show", "tag-1001")
	assert.Contains(t, out, "Dell Latitude 7440")
	assert.Contains(t, out, "Maria Lopez")
	assert.Contains(t, out, "Audit trail")

	_, err := run(t, dir, "asset", "show", "TAG-100")
	require.ErrorIs(t, err, errclass.ErrNotFound)
	assert.Contains(t, err.Error(), "Did you mean")
}

func TestAssetEdit_RecordsUpdate(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "asset", "edit", "TAG-1003", "--status", "in repair", "--location", "Bench 2")
	assert.Contains(t, out, "Status: In Repair")

	var a model.Asset
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--json", "asset", "show", "TAG-1003")), &a))
	assert.Equal(t, model.StatusInRepair, a.Status)
	assert.Equal(t, "Bench 2", a.Location)
	assert.Equal(t, "LG UltraFine 27", a.Name, "unchanged fields kept")
	require.Len(t, a.AuditLog, 2)
	newest := a.AuditLog[0]
	assert.Equal(t, model.ActionUpdated, newest.Action)
	assert.Contains(t, newest.Details, "In Repair")
	assert.Equal(t, model.ActionCreated, a.AuditLog[1].Action, "original entry kept last")
	assert.Equal(t, audit.DetailsCreated, a.AuditLog[1].Details)
}

func TestAssetEdit_Signature(t *testing.T) {
	dir := testEnv(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	sig := filepath.Join(t.TempDir(), "sig.png")
	require.NoError(t, os.WriteFile(sig, png, 0644))

	mustRun(t, dir, "asset", "edit", "TAG-1003", "--status", "assigned",
		"--assigned-name", "Sam Lee", "--assignment-signature", sig)

	var a model.Asset
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--json", "asset", "show", "TAG-1003")), &a))
	assert.True(t, strings.HasPrefix(a.AssignmentSignature, "data:image/png;base64,"))

	notImage := filepath.Join(t.TempDir(), "sig.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0644))
	_, err := run(t, dir, "asset", "edit", "TAG-1003", "--disposal-signature", notImage)
	assert.ErrorIs(t, err, errclass.ErrInvalidAsset)
}

func TestAssetDelete(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "asset", "delete", "TAG-1002", "--yes")
	assert.Contains(t, out, "Deleted asset TAG-1002")
	assert.Len(t, listAssets(t, dir), 3)

	out = mustRun(t, dir, "asset", "delete", "TAG-1002", "--yes")
	assert.Contains(t, out, "Nothing to delete")
}

func TestAssetDelete_Declined(t *testing.T) {
	dir := testEnv(t)
	cmd := createTestRootCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	_, err := executeCommand(cmd, "--data-dir", dir, "--no-color", "asset", "delete", "TAG-1001")
	assert.ErrorIs(t, err, errAborted)
	assert.Len(t, listAssets(t, dir), 4)
}

func TestEphemeral_DoesNotPersist(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "--ephemeral", "asset", "add", "--name", "Scratch")
	assert.Len(t, listAssets(t, dir), 4)
}

func TestAudit_FlattenedAndVerified(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "asset", "add", "--name", "Audited Laptop", "--tag", "TAG-3001")
	mustRun(t, dir, "asset", "edit", "TAG-3001", "--status", "in repair")

	out := mustRun(t, dir, "audit", "--search", "TAG-3001")
	assert.Contains(t, out, "Audited Laptop")
	assert.Contains(t, out, "Updated")

	out = mustRun(t, dir, "audit", "journal")
	assert.Contains(t, out, "TAG-3001")

	out = mustRun(t, dir, "audit", "verify")
	assert.Contains(t, out, "2 record(s), chain intact")
}

func TestAudit_VerifyDetectsTampering(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "asset", "add", "--name", "Original Name", "--tag", "TAG-3002")
	mustRun(t, dir, "asset", "delete", "TAG-3002", "--yes")

	path := filepath.Join(dir, "audit.jsonl")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes.Replace(data, []byte("Original Name"), []byte("Forged Name"), 1), 0644))

	_, err = run(t, dir, "audit", "verify")
	assert.ErrorIs(t, err, errclass.ErrAuditChainBroken)
}

func TestReport_Breakdowns(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "report", "status")
	assert.Contains(t, out, "Assigned")
	assert.Contains(t, out, "Total")

	out = mustRun(t, dir, "report", "category")
	assert.Contains(t, out, "Laptop")
}

func TestReport_PieSVG(t *testing.T) {
	dir := testEnv(t)
	svg := filepath.Join(t.TempDir(), "status.svg")
	out := mustRun(t, dir, "report", "pie", "--svg", svg)
	assert.Contains(t, out, "Chart written to")

	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	mustRun(t, dir, "clear", "--yes")
	out = mustRun(t, dir, "report", "pie")
	assert.Contains(t, out, "No data")
}

func TestDashboard_JSON(t *testing.T) {
	dir := testEnv(t)
	var got struct {
		Summary struct {
			TotalAssets int `json:"totalAssets"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "--json", "dashboard")), &got))
	assert.Equal(t, 4, got.Summary.TotalAssets)
}

func TestUser_AddAndList(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "user", "add", "--name", "Sam Lee", "--email", "sam@example.com",
		"--password", "pw", "--role", "viewer", "--hash")
	assert.Contains(t, out, "Added user Sam Lee <sam@example.com> (Viewer)")

	out = mustRun(t, dir, "user", "list")
	assert.Contains(t, out, "sam@example.com")
	assert.Contains(t, out, "admin@nexa.com")

	_, err := run(t, dir, "user", "add", "--name", "Dup", "--email", "SAM@example.com")
	assert.ErrorIs(t, err, errclass.ErrInvalidUser)

	_, err = run(t, dir, "user", "add", "--name", "Odd", "--email", "odd@example.com", "--role", "owner")
	assert.ErrorIs(t, err, errclass.ErrInvalidUser)

	out = mustRun(t, dir, "login", "--email", "sam@example.com", "--password", "pw")
	assert.Contains(t, out, "Signed in as Sam Lee")
}

func TestLogin_AttributesChanges(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "login", "--email", "Admin@Nexa.com", "--password", "admin")
	assert.Contains(t, out, "Signed in as Admin User")

	out = mustRun(t, dir, "whoami")
	assert.Contains(t, out, "Admin User <admin@nexa.com>")

	mustRun(t, dir, "asset", "add", "--name", "Attributed", "--tag", "TAG-4001")
	assets := listAssets(t, dir)
	assert.Equal(t, "Admin User", assets[0].AuditLog[0].User)

	mustRun(t, dir, "logout")
	out = mustRun(t, dir, "whoami")
	assert.Contains(t, out, "Not signed in")
}

func TestLogin_Rejected(t *testing.T) {
	dir := testEnv(t)
	_, err := run(t, dir, "login", "--email", "admin@nexa.com", "--password", "wrong")
	assert.ErrorIs(t, err, errclass.ErrInvalidCredentials)

	_, err = run(t, dir, "login", "--email", "contractor@nexa.com", "--password", "viewer")
	assert.ErrorIs(t, err, errclass.ErrInvalidCredentials, "inactive users cannot sign in")
}

func TestLogin_PromptsForMissingValues(t *testing.T) {
	dir := testEnv(t)
	cmd := createTestRootCmd()
	cmd.SetIn(strings.NewReader("staff@nexa.com\nstaff\n"))
	out, err := executeCommand(cmd, "--data-dir", dir, "--no-color", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Staff Member")
}

func TestDescribe_Disabled(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "describe", "dell", "laptop")
	assert.Contains(t, out, assist.DisabledMessage)
}

func TestDoctor_Healthy(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "asset", "add", "--name", "Checked", "--tag", "TAG-5001")
	_, err := run(t, dir, "doctor", "--strict")
	assert.NoError(t, err)
}

func TestDoctor_CorruptDocument(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "asset", "add", "--name", "Checked", "--tag", "TAG-5002")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nexa-assets-v3.json"), []byte("{not json"), 0644))

	out, err := run(t, dir, "doctor")
	assert.ErrorIs(t, err, errUnhealthy)
	assert.Contains(t, out, "Findings")
}

func TestConfig_SetGet(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "config", "set", "reports.maintenance_window_days", "30")
	assert.Contains(t, out, "Set reports.maintenance_window_days = 30")

	out = mustRun(t, dir, "config", "get", "reports.maintenance_window_days")
	assert.Equal(t, "30\n", out)

	_, err := run(t, dir, "config", "set", "storage.backend", "floppy")
	assert.Error(t, err)

	_, err = run(t, dir, "config", "get", "nope")
	assert.Error(t, err)

	out = mustRun(t, dir, "config", "show")
	assert.Contains(t, out, "journal.enabled: true")
}

func TestClear(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "user", "add", "--name", "Temp", "--email", "temp@example.com")
	mustRun(t, dir, "login", "--email", "admin@nexa.com", "--password", "admin")

	mustRun(t, dir, "clear", "--yes")

	out := mustRun(t, dir, "asset", "list")
	assert.Contains(t, out, "No assets found")
	out = mustRun(t, dir, "user", "list")
	assert.NotContains(t, out, "temp@example.com", "users reseeded")
	assert.Contains(t, out, "admin@nexa.com")
	out = mustRun(t, dir, "whoami")
	assert.Contains(t, out, "Not signed in")
}

func TestMetrics_Text(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "metrics")
	assert.Contains(t, out, "nexa_assets")
}

func TestCompletion(t *testing.T) {
	cmd := createTestRootCmd()
	out, err := executeCommand(cmd, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "nexa")
}
