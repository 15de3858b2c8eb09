package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"indy-builder/core/config"
	"indy-builder/core/reconcile"
	"indy-builder/core/storage"
	"indy-builder/core/storage/mocks"
	"indy-builder/feature/catalog"
	"indy-builder/feature/costing"
	"indy-builder/feature/export"
	"indy-builder/feature/pricing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.Options{BuildPlan: "Rifter\t12"})
	require.NoError(t, err)
	return cat
}

func price(v float64) *float64 { return &v }

func TestHeader(t *testing.T) {
	header := export.Header(newCatalog(t).Hubs())

	require.Len(t, header, 30)
	assert.Equal(t, []string{"item_name", "build_cost_per_unit", "volume", "top_market_group", "quantity"}, header[:5])
	assert.Equal(t, "jita_sell_price", header[5])
	assert.Equal(t, "o-pnsn_on_market", header[21])
	assert.Equal(t, "c-n4od_avg_daily_volume", header[29])
}

func TestResolve_Precedence(t *testing.T) {
	cat := newCatalog(t)
	overrides := map[string]map[string]config.HubOverride{
		"jita":  {"rifter": {SellPrice: 1000, OrderPrice: 900, AvgDailyVolume: 12}},
		"AMARR": {" Rifter ": {SellPrice: 1100, OrderPrice: 950, AvgDailyVolume: 3}},
	}
	live := pricing.NewConfigProvider(map[string]config.LivePrice{"Rifter": {SellPrice: price(1234.5)}})
	hubState := map[reconcile.HubKey]reconcile.HubState{
		{Key: reconcile.MustKey(587, "Rifter"), Hub: "Jita"}:    {Stock: 125, OnMarket: 50},
		{Key: reconcile.MustKey(nil, "Rifter"), Hub: "Jita"}:    {Stock: 5, OnMarket: 1},
		{Key: reconcile.MustKey(587, "Rifter"), Hub: "Amarr"}:   {Stock: 20, OnMarket: 12},
		{Key: reconcile.MustKey(587, "Rifter"), Hub: "Nowhere"}: {Stock: 9, OnMarket: 9},
		{Key: reconcile.MustKey(34, "Tritanium"), Hub: "Jita"}:  {Stock: 7, OnMarket: 7},
	}

	t.Run("LiveOverStatic", func(t *testing.T) {
		metrics := export.NewAssembler(cat, overrides, live, hubState).Resolve(context.Background(), "Rifter")

		require.Len(t, metrics, 5)
		assert.Equal(t, export.HubMetrics{SellPrice: 1234.5, OrderPrice: 900, AvgDailyVolume: 12, Stock: 130, OnMarket: 51}, metrics["Jita"])
		assert.Equal(t, export.HubMetrics{SellPrice: 1100, OrderPrice: 950, AvgDailyVolume: 3, Stock: 20, OnMarket: 12}, metrics["Amarr"])
		assert.Equal(t, export.HubMetrics{}, metrics["Dodixie"])
	})

	t.Run("StaticWithoutLive", func(t *testing.T) {
		metrics := export.NewAssembler(cat, overrides, nil, nil).Resolve(context.Background(), "rifter")
		assert.Equal(t, 1000.0, metrics["Jita"].SellPrice)
		assert.Zero(t, metrics["Jita"].Stock)
	})

	t.Run("LiveWithoutStatic", func(t *testing.T) {
		metrics := export.NewAssembler(cat, nil, live, nil).Resolve(context.Background(), "Rifter")
		assert.Equal(t, 1234.5, metrics["Jita"].SellPrice)
		assert.Zero(t, metrics["Jita"].OrderPrice)
		assert.Zero(t, metrics["Amarr"].SellPrice)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		metrics := export.NewAssembler(cat, overrides, live, hubState).Resolve(context.Background(), "Merlin")
		for hub, m := range metrics {
			assert.Equal(t, export.HubMetrics{}, m, hub)
		}
	})
}

func TestRows(t *testing.T) {
	rows := export.NewAssembler(newCatalog(t), nil, nil, nil).Rows(context.Background(), []costing.BlueprintCost{
		{Name: "Rifter", TotalCost: 486},
		{Name: "Merlin", TotalCost: 388.8},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "Rifter", rows[0].ItemName)
	assert.Equal(t, 486.0, rows[0].BuildCostPerUnit)
	assert.Equal(t, 12, rows[0].Quantity)
	assert.Equal(t, 0, rows[1].Quantity)
	assert.Len(t, rows[1].Hubs, 5)
}

func sampleRows(t *testing.T) ([]string, []export.Row) {
	cat := newCatalog(t)
	live := pricing.NewConfigProvider(map[string]config.LivePrice{"Rifter": {SellPrice: price(1234.5)}})
	hubState := map[reconcile.HubKey]reconcile.HubState{
		{Key: reconcile.MustKey(587, "rifter"), Hub: "Jita"}: {Stock: 125, OnMarket: 50},
	}
	rows := export.NewAssembler(cat, nil, live, hubState).Rows(context.Background(), []costing.BlueprintCost{{Name: "Rifter", TotalCost: 486}})
	return cat.Hubs(), rows
}

func TestWriteCSV(t *testing.T) {
	hubs, rows := sampleRows(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, hubs, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Len(t, records[1], 30)

	assert.Equal(t, export.Header(hubs), records[0])
	assert.Equal(t, []string{"Rifter", "486", "", "", "12", "1234.5", "50", "125", "0", "0"}, records[1][:10])
}

func TestWriteXLSX(t *testing.T) {
	hubs, rows := sampleRows(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, hubs, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows("report")
	require.NoError(t, err)
	require.Len(t, sheetRows, 2)
	assert.Equal(t, "item_name", sheetRows[0][0])
	assert.Equal(t, "c-n4od_avg_daily_volume", sheetRows[0][29])
	assert.Equal(t, "Rifter", sheetRows[1][0])
	assert.Equal(t, "486", sheetRows[1][1])
	assert.Equal(t, "1234.5", sheetRows[1][5])
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	local := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(local, []byte("item_name\nRifter\n"), 0o644))

	cfg := storage.Config{Bucket: "indy-reports", Prefix: "reports/", Region: "us-east-1"}

	t.Run("Uploads", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "indy-reports").Return(true, nil)
		m.On("PutObject", ctx, "indy-reports", "reports/report.csv", mock.Anything, int64(17),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "text/csv" }),
		).Return(minio.UploadInfo{}, nil)

		name, err := export.Publish(ctx, m, cfg, local)
		require.NoError(t, err)
		assert.Equal(t, "reports/report.csv", name)
		m.AssertExpectations(t)
	})

	t.Run("UploadFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "indy-reports").Return(true, nil)
		m.On("PutObject", ctx, "indy-reports", "reports/report.csv", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied"))

		_, err := export.Publish(ctx, m, cfg, local)
		assert.ErrorContains(t, err, "failed to upload reports/report.csv")
	})

	t.Run("MissingFile", func(t *testing.T) {
		m := new(mocks.Client)
		_, err := export.Publish(ctx, m, cfg, filepath.Join(dir, "missing.csv"))
		assert.ErrorContains(t, err, "failed to open report")
		m.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
	})
}
