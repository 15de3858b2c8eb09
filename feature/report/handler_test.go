package report_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"indy-builder/core/cache"
	"indy-builder/core/config"
	"indy-builder/core/database"
	"indy-builder/core/loader"
	"indy-builder/feature/catalog"
	"indy-builder/feature/costing"
	"indy-builder/feature/export"
	"indy-builder/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, blueprints []config.Blueprint) (*fiber.App, *cache.Store) {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	store, err := cache.Open(context.Background(), db, cache.Options{})
	require.NoError(t, err)

	cat, err := catalog.New(catalog.Options{})
	require.NoError(t, err)

	inputs := costing.Inputs{
		Defaults:       config.Defaults{ME: 10, TE: 20, TaxRate: 0.08},
		Blueprints:     blueprints,
		PriceOverrides: map[string]float64{"tritanium": 5},
	}
	overrides := map[string]map[string]config.HubOverride{
		"amarr": {"rifter": {SellPrice: 700, OrderPrice: 650, AvgDailyVolume: 4}},
	}

	engine := costing.NewEngine(cat, store, nil, logger)
	svc := report.NewService(engine, inputs, cat, export.NewAssembler(cat, overrides, nil, nil), logger)

	app := fiber.New()
	mgr := loader.NewManager()
	mgr.Register(report.NewFeature(svc))
	require.NoError(t, mgr.LoadAll(app))
	return app, store
}

var shipyard = []config.Blueprint{
	{Name: "Rifter", Materials: map[string]float64{"tritanium": 100}},
	{Name: "Merlin", Materials: map[string]float64{"tritanium": 80}},
}

func TestHandleGetCosts(t *testing.T) {
	app, store := newApp(t, shipyard)

	resp, err := app.Test(httptest.NewRequest("GET", "/report/costs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snap report.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Len(t, snap.Costs, 2)
	assert.Equal(t, "Rifter", snap.Costs[0].Name)
	assert.Equal(t, 486.0, snap.Costs[0].TotalCost)
	assert.Equal(t, 388.8, snap.Costs[1].TotalCost)
	assert.False(t, snap.RefreshedAt.IsZero())

	count, err := store.CountBuildCosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestHandleRefresh(t *testing.T) {
	app, store := newApp(t, shipyard)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/report/refresh", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	count, err := store.CountBuildCosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestHandleRefresh_NotWhitelisted(t *testing.T) {
	app, _ := newApp(t, []config.Blueprint{{Name: "Avatar", Materials: map[string]float64{"tritanium": 1}}})

	resp, err := app.Test(httptest.NewRequest("POST", "/report/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Avatar")
}

func TestHandleExportCSV(t *testing.T) {
	app, _ := newApp(t, shipyard)

	resp, err := app.Test(httptest.NewRequest("GET", "/report/export.csv", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report.csv")

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "item_name,build_cost_per_unit"))
	assert.True(t, strings.HasPrefix(lines[1], "Rifter,486,,,0,0,0,0,0,0,700,0,0,650,4,"))
}
