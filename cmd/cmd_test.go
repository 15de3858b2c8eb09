package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"indy-builder/feature/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfile = `{
  "defaults": {"me": 10, "te": 20, "tax_rate": 0.08},
  "blueprints": [
    {"name": "Rifter", "materials": {"Tritanium": 100}},
    {"name": "Merlin", "materials": {"Tritanium": 80}}
  ],
  "price_overrides": {"Tritanium": 5},
  "hub_market_overrides": {"Amarr": {"Rifter": {"sell_price": 700, "order_price": 650, "avg_daily_volume": 4}}},
  "live_jita_prices": {"Rifter": {"sell_price": 1234.5}},
  "character_state_overrides": {
    "assets": [
      {"type_id": 587, "item_name": "Rifter", "location_id": 60003760, "quantity": 100},
      {"type_id": 587, "item_name": "Rifter", "location_id": 1022734985679, "quantity": 25},
      {"type_id": 587, "item_name": "Rifter", "location_id": 42, "quantity": 999}
    ],
    "open_orders": [
      {"type_id": 587, "item_name": "Rifter", "location_id": 60003760, "volume_remain": 40}
    ]
  },
  "market_snapshots": {
    "Jita": [{"type_id": 587, "item_name": "Rifter", "sell_price": 620000, "buy_price": 575000, "daily_volume": 140}]
  }
}`

// setup points the commands at a temporary profile and cache database.
func setup(t *testing.T, token string) string {
	t.Helper()
	dir := t.TempDir()

	profile := filepath.Join(dir, "app_config.json")
	require.NoError(t, os.WriteFile(profile, []byte(testProfile), 0o644))

	t.Setenv("PROFILE_PATH", profile)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "cache.sqlite3"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ESI_ACCESS_TOKEN", token)

	settingsDir = dir
	profilePath = ""
	nowFunc = func() time.Time { return time.Unix(1_700_000_000, 0) }
	t.Cleanup(func() { nowFunc = time.Now })
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestRefreshCommand(t *testing.T) {
	setup(t, "")

	out, err := run(t, "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "Rifter")
	assert.Contains(t, out, "486.00")
	assert.Contains(t, out, "388.80")

	out, err = run(t, "cache", "stats")
	require.NoError(t, err)
	assert.Regexp(t, `build_cost_cache\s+2`, out)
}

func TestExportCommand(t *testing.T) {
	dir := setup(t, "token")
	target := filepath.Join(dir, "report.csv")

	_, err := run(t, "export", "--out", target, "--format", "csv")
	require.NoError(t, err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Len(t, records[0], 30)

	rifter := records[1]
	assert.Equal(t, "Rifter", rifter[0])
	assert.Equal(t, "486", rifter[1])
	// jita: live price, on market, stock
	assert.Equal(t, []string{"1234.5", "40", "125"}, rifter[5:8])
	// amarr: static override
	assert.Equal(t, "700", rifter[10])
}

func TestExportCommand_RejectsFormat(t *testing.T) {
	setup(t, "")
	_, err := run(t, "export", "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestExportCommand_RequiresToken(t *testing.T) {
	dir := setup(t, "")
	target := filepath.Join(dir, "report.csv")

	_, err := run(t, "export", "--out", target, "--format", "csv")
	assert.ErrorIs(t, err, providers.ErrMissingCredential)
	assert.NoFileExists(t, target)
}

func TestSnapshotCharacterCommand_RequiresToken(t *testing.T) {
	setup(t, " ")
	_, err := run(t, "snapshot", "character")
	assert.ErrorContains(t, err, "bearer token is required")
}

func TestSnapshotAndJoin(t *testing.T) {
	setup(t, "token")

	_, err := run(t, "snapshot", "market", "--hub", "jita")
	require.NoError(t, err)
	_, err = run(t, "snapshot", "character")
	require.NoError(t, err)

	out, err := run(t, "join", "--hub", "Jita")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// merlin and rifter costs by name, rifter character and market state by id and name
	require.Len(t, lines, 3)

	byKey := map[string]map[string]any{}
	for _, line := range lines {
		var row map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &row))
		byKey[row["key"].(string)] = row
	}

	assert.Contains(t, byKey["|rifter"], "cost")
	assert.NotContains(t, byKey["|rifter"], "market_snapshot")
	assert.Contains(t, byKey["587|rifter"], "character_state")
	assert.Contains(t, byKey["587|rifter"], "market_snapshot")
	assert.Contains(t, byKey["|merlin"], "cost")
}

func TestJoinCommand_UnknownHub(t *testing.T) {
	setup(t, "")
	_, err := run(t, "join", "--hub", "Rens")
	assert.ErrorContains(t, err, `unknown hub "Rens"`)
}
