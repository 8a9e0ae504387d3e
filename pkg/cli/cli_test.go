package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessgraph/pkg/accesstest"
)

// runCommand executes the root command with args and captures its
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func newFakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(accesstest.New())
	t.Cleanup(srv.Close)
	return srv
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ACCESSCTL_HOST", "")
	t.Setenv("ACCESSCTL_TOKEN", "")
	t.Setenv("ACCESSCTL_PROFILE", "")
	return home
}

// === Connection settings ===

func TestMissingHostFails(t *testing.T) {
	isolateHome(t)
	_, err := runCommand(t, "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no host configured")
}

func TestHostFromEnvironment(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)
	t.Setenv("ACCESSCTL_HOST", srv.URL)

	out, err := runCommand(t, "users", "add", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, `Added user "alice"`)
}

func TestFlagOverridesEnvironment(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)
	t.Setenv("ACCESSCTL_HOST", "http://unreachable.invalid")

	_, err := runCommand(t, "--host", srv.URL, "users", "add", "alice")
	require.NoError(t, err)
}

func TestTokenSentAsBearerHeader(t *testing.T) {
	isolateHome(t)
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	_, err := runCommand(t, "--host", srv.URL, "--token", "sekret", "users", "list")
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekret", gotAuth)
}

func TestInvalidOutputFormatRejected(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)

	_, err := runCommand(t, "--host", srv.URL, "-o", "xml", "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

// === Element and mapping commands ===

func TestUserLifecycleViaCommands(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)

	_, err := runCommand(t, "--host", srv.URL, "users", "add", "alice")
	require.NoError(t, err)

	out, err := runCommand(t, "--host", srv.URL, "users", "contains", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "true")

	out, err = runCommand(t, "--host", srv.URL, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")

	_, err = runCommand(t, "--host", srv.URL, "users", "remove", "alice")
	require.NoError(t, err)

	out, err = runCommand(t, "--host", srv.URL, "users", "contains", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "false")
}

func TestIndirectGroupMembership(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)
	host := []string{"--host", srv.URL}

	for _, args := range [][]string{
		{"users", "add", "alice"},
		{"groups", "add", "dev"},
		{"groups", "add", "ops"},
		{"users", "add-group", "alice", "dev"},
		{"groups", "add-member", "dev", "ops"},
	} {
		_, err := runCommand(t, append(host, args...)...)
		require.NoError(t, err)
	}

	out, err := runCommand(t, append(host, "users", "groups", "alice")...)
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
	assert.NotContains(t, out, "ops")

	out, err = runCommand(t, append(host, "users", "groups", "alice", "--indirect")...)
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
	assert.Contains(t, out, "ops")
}

func TestAccessCheckThroughGroupChain(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)
	host := []string{"--host", srv.URL}

	for _, args := range [][]string{
		{"users", "add", "alice"},
		{"groups", "add", "dev"},
		{"users", "add-group", "alice", "dev"},
		{"groups", "grant-component", "dev", "Orders", "View"},
	} {
		_, err := runCommand(t, append(host, args...)...)
		require.NoError(t, err)
	}

	out, err := runCommand(t, append(host, "access", "check-component", "alice", "Orders", "View")...)
	require.NoError(t, err)
	assert.Contains(t, out, "true")

	out, err = runCommand(t, append(host, "access", "check-component", "alice", "Orders", "Modify")...)
	require.NoError(t, err)
	assert.Contains(t, out, "false")
}

func TestNotFoundSurfacesServerMessage(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)

	_, err := runCommand(t, "--host", srv.URL, "users", "groups", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestJSONOutput(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)
	host := []string{"--host", srv.URL}

	_, err := runCommand(t, append(host, "users", "add", "alice")...)
	require.NoError(t, err)

	out, err := runCommand(t, append(host, "-o", "json", "users", "list")...)
	require.NoError(t, err)
	assert.JSONEq(t, `["alice"]`, out)
}

// === apply ===

func TestApplyManifest(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)

	manifest := `
users: [alice, bob]
groups: [dev, ops]
entityTypes:
  - name: ClientAccount
    entities: [CompanyA, CompanyB]
userGroups:
  - user: alice
    group: dev
groupGroups:
  - fromGroup: dev
    toGroup: ops
componentGrants:
  - group: ops
    applicationComponent: Orders
    accessLevel: View
entityGrants:
  - user: bob
    entityType: ClientAccount
    entity: CompanyA
`
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	out, err := runCommand(t, "--host", srv.URL, "apply", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied")

	out, err = runCommand(t, "--host", srv.URL, "access", "check-component", "alice", "Orders", "View")
	require.NoError(t, err)
	assert.Contains(t, out, "true")

	out, err = runCommand(t, "--host", srv.URL, "access", "check-entity", "bob", "ClientAccount", "CompanyA")
	require.NoError(t, err)
	assert.Contains(t, out, "true")
}

func TestApplyRejectsAmbiguousGrant(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)

	manifest := `
componentGrants:
  - user: alice
    group: dev
    applicationComponent: Orders
    accessLevel: View
`
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	_, err := runCommand(t, "--host", srv.URL, "apply", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of user or group")
}

// === Profiles ===

func TestProfileRoundTrip(t *testing.T) {
	isolateHome(t)
	srv := newFakeService(t)

	_, err := runCommand(t, "config", "set-profile", "local", "--host", srv.URL)
	require.NoError(t, err)

	// set-profile marks the first profile active, so the host resolves
	// without flags or environment.
	out, err := runCommand(t, "users", "contains", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "false")

	out, err = runCommand(t, "config", "list-profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "local")
	assert.Contains(t, out, srv.URL)

	_, err = runCommand(t, "config", "delete-profile", "local")
	require.NoError(t, err)

	_, err = runCommand(t, "users", "contains", "nobody")
	require.Error(t, err)
}

func TestUseUnknownProfileFails(t *testing.T) {
	isolateHome(t)
	_, err := runCommand(t, "config", "use-profile", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "missing" not found`)
}

// === auth token ===

func TestAuthTokenMintsVerifiableJWT(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "auth", "token", "--secret", "hunter2", "--subject", "alice")
	require.NoError(t, err)

	raw := bytes.TrimSpace([]byte(out))
	parsed, err := jwt.Parse(string(raw), func(tok *jwt.Token) (any, error) {
		return []byte("hunter2"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestAuthTokenSaveRequiresActiveProfile(t *testing.T) {
	isolateHome(t)
	_, err := runCommand(t, "auth", "token", "--secret", "hunter2", "--save")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active profile")
}
