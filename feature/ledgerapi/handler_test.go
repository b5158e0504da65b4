package ledgerapi_test

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"loot-ledger/core/journal"
	"loot-ledger/core/ledgerfile"
	"loot-ledger/feature/ledgerapi"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, paths ledgerfile.Config, j *journal.Journal) *fiber.App {
	t.Helper()
	svc := ledgerapi.NewService(paths, j, zap.NewNop())
	h := ledgerapi.NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func TestHandleLedger_ServesPersistedDocument(t *testing.T) {
	dir := t.TempDir()
	paths := ledgerfile.Config{LootFile: filepath.Join(dir, "raid_data.json")}
	doc := `{"Harkshock": {"Mainspec": {}, "Offspec": {}}}`
	require.NoError(t, os.WriteFile(paths.LootFile, []byte(doc), 0o644))

	app := newTestApp(t, paths, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/ledger", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(body))
}

func TestHandleLedger_MissingDocumentIsEmptyState(t *testing.T) {
	paths := ledgerfile.Config{LootFile: filepath.Join(t.TempDir(), "raid_data.json")}
	app := newTestApp(t, paths, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/ledger", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(body))
}

func TestHandleSoftres_MissingDocumentIsEmptyState(t *testing.T) {
	paths := ledgerfile.Config{SoftresFile: filepath.Join(t.TempDir(), "softres_data.json")}
	app := newTestApp(t, paths, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/softres", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestHandleRuns(t *testing.T) {
	j, err := journal.Open(journal.Config{Path: ":memory:"})
	require.NoError(t, err)

	app := newTestApp(t, ledgerfile.Config{}, j)

	resp, err := app.Test(httptest.NewRequest("GET", "/runs", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}
