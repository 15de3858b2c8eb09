package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"indy-builder/core/database"
	"indy-builder/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStore marks a failure of the durable store itself. It is never used for a miss.
var ErrStore = errors.New("cache store failure")

// Options holds the freshness windows applied by the snapshot reads.
type Options struct {
	MarketTTL    time.Duration
	CharacterTTL time.Duration
}

// Store is the persistent TTL cache for market snapshots, character snapshots and build costs.
// Every read and write takes the current time explicitly.
type Store struct {
	db           *gorm.DB
	marketTTL    time.Duration
	characterTTL time.Duration
}

// Holding is one item quantity of a cached character snapshot.
type Holding struct {
	Key      reconcile.Key
	Quantity int64
}

// CharacterSnapshot is the character state saved under one timestamp.
type CharacterSnapshot struct {
	Timestamp  int64
	Assets     []Holding
	OpenOrders []Holding
}

// Records folds the snapshot back into summed character state records.
func (s *CharacterSnapshot) Records() map[reconcile.Key]reconcile.CharacterStateRecord {
	out := make(map[reconcile.Key]reconcile.CharacterStateRecord, len(s.Assets))
	for _, h := range s.Assets {
		rec := out[h.Key]
		rec.Key = h.Key
		rec.AssetQuantity += h.Quantity
		out[h.Key] = rec
	}
	for _, h := range s.OpenOrders {
		rec := out[h.Key]
		rec.Key = h.Key
		rec.OpenOrderQuantity += h.Quantity
		out[h.Key] = rec
	}
	return out
}

// Stats holds the row count of every cache table.
type Stats struct {
	MarketSnapshots   int64            `json:"market_snapshots"`
	CharacterAssets   int64            `json:"character_assets_snapshots"`
	CharacterOrders   int64            `json:"character_open_orders_snapshots"`
	BuildCosts        int64            `json:"build_cost_cache"`
	LatestMarketByHub map[string]int64 `json:"latest_market_by_hub"`
}

type latestTS struct {
	Latest sql.NullInt64
}

// New wraps an open database without touching its schema.
func New(db *gorm.DB, opts Options) *Store {
	return &Store{
		db:           db,
		marketTTL:    opts.MarketTTL,
		characterTTL: opts.CharacterTTL,
	}
}

// Open wraps the database and creates the cache tables when missing.
// Schema creation is idempotent and runs on every open.
func Open(ctx context.Context, db *gorm.DB, opts Options) (*Store, error) {
	s := New(db, opts)
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Migrate creates or updates the four cache tables.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&MarketSnapshotRow{},
		&CharacterAssetRow{},
		&CharacterOrderRow{},
		&BuildCostRow{},
	)
	if err != nil {
		return storeErr("migrate schema", err)
	}
	return nil
}

// SaveMarketSnapshot writes all records for the hub under the timestamp of now.
// Rows sharing a primary key with an existing row overwrite it.
func (s *Store) SaveMarketSnapshot(ctx context.Context, hub string, records []reconcile.MarketSnapshotRecord, now time.Time) (int64, error) {
	ts := now.Unix()
	if len(records) == 0 {
		return ts, nil
	}

	rows := make([]MarketSnapshotRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, MarketSnapshotRow{
			HubName:     hub,
			SnapshotTS:  ts,
			ItemKey:     rec.Key.String(),
			TypeID:      rec.Key.TypeIDPtr(),
			ItemName:    rec.Key.Name(),
			SellPrice:   rec.SellPrice,
			BuyPrice:    rec.BuyPrice,
			DailyVolume: rec.DailyVolume,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
	})
	if err != nil {
		return 0, storeErr("save market snapshot", err)
	}
	return ts, nil
}

// GetMarketSnapshot returns the rows of the latest snapshot of the hub.
// The boolean is false when no snapshot exists or the latest one is older than the market TTL.
func (s *Store) GetMarketSnapshot(ctx context.Context, hub string, now time.Time) ([]reconcile.MarketSnapshotRecord, bool, error) {
	var latest latestTS
	err := s.db.WithContext(ctx).
		Model(&MarketSnapshotRow{}).
		Select("MAX(snapshot_ts) AS latest").
		Where("hub_name = ?", hub).
		Scan(&latest).Error
	if err != nil {
		return nil, false, storeErr("read latest market snapshot", err)
	}
	if !fresh(latest.Latest, now, s.marketTTL) {
		return nil, false, nil
	}

	var rows []MarketSnapshotRow
	err = s.db.WithContext(ctx).
		Where("hub_name = ? AND snapshot_ts = ?", hub, latest.Latest.Int64).
		Order("item_key").
		Find(&rows).Error
	if err != nil {
		return nil, false, storeErr("read market snapshot rows", err)
	}

	records := make([]reconcile.MarketSnapshotRecord, 0, len(rows))
	for _, row := range rows {
		key, err := reconcile.NewKey(row.TypeID, row.ItemName)
		if err != nil {
			return nil, false, storeErr("decode market snapshot row", err)
		}
		records = append(records, reconcile.MarketSnapshotRecord{
			Key:         key,
			HubName:     row.HubName,
			SellPrice:   row.SellPrice,
			BuyPrice:    row.BuyPrice,
			DailyVolume: row.DailyVolume,
		})
	}
	return records, true, nil
}

// SaveCharacterSnapshot writes asset and open-order rows for every record under one shared timestamp.
func (s *Store) SaveCharacterSnapshot(ctx context.Context, records []reconcile.CharacterStateRecord, now time.Time) (int64, error) {
	ts := now.Unix()
	if len(records) == 0 {
		return ts, nil
	}

	assets := make([]CharacterAssetRow, 0, len(records))
	orders := make([]CharacterOrderRow, 0, len(records))
	for _, rec := range records {
		assets = append(assets, CharacterAssetRow{
			SnapshotTS: ts,
			ItemKey:    rec.Key.String(),
			TypeID:     rec.Key.TypeIDPtr(),
			ItemName:   rec.Key.Name(),
			Quantity:   rec.AssetQuantity,
		})
		orders = append(orders, CharacterOrderRow{
			SnapshotTS:   ts,
			ItemKey:      rec.Key.String(),
			TypeID:       rec.Key.TypeIDPtr(),
			ItemName:     rec.Key.Name(),
			VolumeRemain: rec.OpenOrderQuantity,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&assets).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&orders).Error
	})
	if err != nil {
		return 0, storeErr("save character snapshot", err)
	}
	return ts, nil
}

// GetCharacterSnapshot returns the latest character snapshot.
// The snapshot timestamp is the older of the latest asset and latest order timestamps, so a
// stale half makes the whole snapshot absent. An empty row set is also absent.
func (s *Store) GetCharacterSnapshot(ctx context.Context, now time.Time) (*CharacterSnapshot, bool, error) {
	var assetsTS, ordersTS latestTS
	if err := s.db.WithContext(ctx).Model(&CharacterAssetRow{}).Select("MAX(snapshot_ts) AS latest").Scan(&assetsTS).Error; err != nil {
		return nil, false, storeErr("read latest asset snapshot", err)
	}
	if err := s.db.WithContext(ctx).Model(&CharacterOrderRow{}).Select("MAX(snapshot_ts) AS latest").Scan(&ordersTS).Error; err != nil {
		return nil, false, storeErr("read latest order snapshot", err)
	}
	if !assetsTS.Latest.Valid || !ordersTS.Latest.Valid {
		return nil, false, nil
	}

	combined := sql.NullInt64{Int64: min(assetsTS.Latest.Int64, ordersTS.Latest.Int64), Valid: true}
	if !fresh(combined, now, s.characterTTL) {
		return nil, false, nil
	}

	var assetRows []CharacterAssetRow
	if err := s.db.WithContext(ctx).Where("snapshot_ts = ?", combined.Int64).Order("item_key").Find(&assetRows).Error; err != nil {
		return nil, false, storeErr("read asset snapshot rows", err)
	}
	var orderRows []CharacterOrderRow
	if err := s.db.WithContext(ctx).Where("snapshot_ts = ?", combined.Int64).Order("item_key").Find(&orderRows).Error; err != nil {
		return nil, false, storeErr("read order snapshot rows", err)
	}

	snapshot := &CharacterSnapshot{
		Timestamp:  combined.Int64,
		Assets:     make([]Holding, 0, len(assetRows)),
		OpenOrders: make([]Holding, 0, len(orderRows)),
	}
	for _, row := range assetRows {
		key, err := reconcile.NewKey(row.TypeID, row.ItemName)
		if err != nil {
			return nil, false, storeErr("decode asset snapshot row", err)
		}
		snapshot.Assets = append(snapshot.Assets, Holding{Key: key, Quantity: row.Quantity})
	}
	for _, row := range orderRows {
		key, err := reconcile.NewKey(row.TypeID, row.ItemName)
		if err != nil {
			return nil, false, storeErr("decode order snapshot row", err)
		}
		snapshot.OpenOrders = append(snapshot.OpenOrders, Holding{Key: key, Quantity: row.VolumeRemain})
	}
	return snapshot, true, nil
}

// GetBuildCost decodes the cached payload for the content hash into dest.
// Build costs never expire; the boolean is false only when the hash is unknown.
func (s *Store) GetBuildCost(ctx context.Context, hash string, dest any) (bool, error) {
	var rows []BuildCostRow
	err := s.db.WithContext(ctx).Where("config_hash = ?", hash).Limit(1).Find(&rows).Error
	if err != nil {
		return false, storeErr("read build cost", err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(rows[0].PayloadJSON, dest); err != nil {
		return false, storeErr("decode build cost payload", err)
	}
	return true, nil
}

// SaveBuildCost stores the payload under the content hash, replacing any previous row.
func (s *Store) SaveBuildCost(ctx context.Context, hash string, payload any, now time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode build cost payload: %w", err)
	}

	row := BuildCostRow{
		ConfigHash:  hash,
		ComputedTS:  now.Unix(),
		PayloadJSON: raw,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
	if err != nil {
		return storeErr("save build cost", err)
	}
	return nil
}

// CountBuildCosts returns the number of memoized cost rows.
func (s *Store) CountBuildCosts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&BuildCostRow{}).Count(&n).Error; err != nil {
		return 0, storeErr("count build costs", err)
	}
	return n, nil
}

// Stats returns the row count of every table and the latest market timestamp per hub.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{LatestMarketByHub: map[string]int64{}}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&MarketSnapshotRow{}, &stats.MarketSnapshots},
		{&CharacterAssetRow{}, &stats.CharacterAssets},
		{&CharacterOrderRow{}, &stats.CharacterOrders},
		{&BuildCostRow{}, &stats.BuildCosts},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return nil, storeErr("count rows", err)
		}
	}

	var hubs []struct {
		HubName string
		Latest  int64
	}
	err := s.db.WithContext(ctx).
		Model(&MarketSnapshotRow{}).
		Select("hub_name, MAX(snapshot_ts) AS latest").
		Group("hub_name").
		Scan(&hubs).Error
	if err != nil {
		return nil, storeErr("read market hubs", err)
	}
	for _, h := range hubs {
		stats.LatestMarketByHub[h.HubName] = h.Latest
	}
	return stats, nil
}

// VerifySchema returns the missing columns per cache table. An empty map means the schema matches.
func (s *Store) VerifySchema(ctx context.Context) (map[string][]string, error) {
	tables := make([]string, 0, len(ExpectedColumns))
	for table := range ExpectedColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	report := make(map[string][]string)
	for _, table := range tables {
		missing, err := database.MissingColumns(s.db.WithContext(ctx), table, ExpectedColumns[table])
		if err != nil {
			return nil, storeErr("inspect "+table, err)
		}
		if len(missing) > 0 {
			report[table] = missing
		}
	}
	return report, nil
}

// fresh reports whether a snapshot taken at latest is still within ttl of now.
func fresh(latest sql.NullInt64, now time.Time, ttl time.Duration) bool {
	if !latest.Valid {
		return false
	}
	oldestAllowed := now.Unix() - int64(ttl/time.Second)
	return latest.Int64 >= oldestAllowed
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
