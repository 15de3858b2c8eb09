package cache_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"indy-builder/core/cache"
	"indy-builder/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var errDisk = errors.New("disk I/O error")

func TestStoreErrors_NotReportedAsMiss(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	opts := cache.Options{MarketTTL: time.Minute, CharacterTTL: time.Minute}

	t.Run("GetMarketSnapshot", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(snapshot_ts) AS latest FROM `market_snapshots`")).WillReturnError(errDisk)

		records, ok, err := cache.New(db, opts).GetMarketSnapshot(ctx, "Jita", now)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.ErrorIs(t, err, errDisk)
		assert.False(t, ok)
		assert.Nil(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetCharacterSnapshot", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(snapshot_ts) AS latest FROM `character_assets_snapshots`")).WillReturnError(errDisk)

		snapshot, ok, err := cache.New(db, opts).GetCharacterSnapshot(ctx, now)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.False(t, ok)
		assert.Nil(t, snapshot)
	})

	t.Run("GetBuildCost", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `build_cost_cache`")).WillReturnError(errDisk)

		var dest map[string]any
		ok, err := cache.New(db, opts).GetBuildCost(ctx, "abc", &dest)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.False(t, ok)
	})

	t.Run("CorruptBuildCostPayload", func(t *testing.T) {
		db, mock := setupMockDB(t)
		rows := sqlmock.NewRows([]string{"config_hash", "computed_ts", "payload_json"}).
			AddRow("abc", 1, "{oops")
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `build_cost_cache`")).WillReturnRows(rows)

		var dest map[string]any
		ok, err := cache.New(db, opts).GetBuildCost(ctx, "abc", &dest)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.False(t, ok)
	})
}

func TestStoreErrors_WritesRollBack(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)

	t.Run("SaveBuildCost", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `build_cost_cache`")).WillReturnError(errDisk)
		mock.ExpectRollback()

		err := cache.New(db, cache.Options{}).SaveBuildCost(ctx, "abc", map[string]any{"name": "Rifter"}, now)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SaveCharacterSnapshotSecondHalf", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `character_assets_snapshots`")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `character_open_orders_snapshots`")).WillReturnError(errDisk)
		mock.ExpectRollback()

		_, err := cache.New(db, cache.Options{}).SaveCharacterSnapshot(ctx, []reconcile.CharacterStateRecord{
			{Key: reconcile.MustKey(34, "Tritanium"), AssetQuantity: 1},
		}, now)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SaveMarketSnapshot", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `market_snapshots`")).WillReturnError(errDisk)
		mock.ExpectRollback()

		ts, err := cache.New(db, cache.Options{}).SaveMarketSnapshot(ctx, "Jita", []reconcile.MarketSnapshotRecord{
			{Key: reconcile.MustKey(34, "Tritanium"), SellPrice: 4},
		}, now)
		assert.ErrorIs(t, err, cache.ErrStore)
		assert.Zero(t, ts)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
