package cache

import "gorm.io/datatypes"

// MarketSnapshotRow is one item of one hub market snapshot.
type MarketSnapshotRow struct {
	HubName     string  `gorm:"column:hub_name;primaryKey;size:64"`
	SnapshotTS  int64   `gorm:"column:snapshot_ts;primaryKey;autoIncrement:false"`
	ItemKey     string  `gorm:"column:item_key;primaryKey;size:255"`
	TypeID      *int64  `gorm:"column:type_id"`
	ItemName    string  `gorm:"column:item_name;not null"`
	SellPrice   float64 `gorm:"column:sell_price;not null"`
	BuyPrice    float64 `gorm:"column:buy_price;not null"`
	DailyVolume float64 `gorm:"column:daily_volume;not null"`
}

func (MarketSnapshotRow) TableName() string { return "market_snapshots" }

// CharacterAssetRow is one owned item of a character snapshot.
type CharacterAssetRow struct {
	SnapshotTS int64  `gorm:"column:snapshot_ts;primaryKey;autoIncrement:false"`
	ItemKey    string `gorm:"column:item_key;primaryKey;size:255"`
	TypeID     *int64 `gorm:"column:type_id"`
	ItemName   string `gorm:"column:item_name;not null"`
	Quantity   int64  `gorm:"column:quantity;not null"`
}

func (CharacterAssetRow) TableName() string { return "character_assets_snapshots" }

// CharacterOrderRow is the outstanding sell volume of one item in a character snapshot.
type CharacterOrderRow struct {
	SnapshotTS   int64  `gorm:"column:snapshot_ts;primaryKey;autoIncrement:false"`
	ItemKey      string `gorm:"column:item_key;primaryKey;size:255"`
	TypeID       *int64 `gorm:"column:type_id"`
	ItemName     string `gorm:"column:item_name;not null"`
	VolumeRemain int64  `gorm:"column:volume_remain;not null"`
}

func (CharacterOrderRow) TableName() string { return "character_open_orders_snapshots" }

// BuildCostRow is a memoized cost computation, keyed by the content hash of its inputs.
type BuildCostRow struct {
	ConfigHash  string         `gorm:"column:config_hash;primaryKey;size:64"`
	ComputedTS  int64          `gorm:"column:computed_ts;not null"`
	PayloadJSON datatypes.JSON `gorm:"column:payload_json;not null"`
}

func (BuildCostRow) TableName() string { return "build_cost_cache" }

// ExpectedColumns lists the columns each cache table must carry.
var ExpectedColumns = map[string][]string{
	"market_snapshots":                {"hub_name", "snapshot_ts", "item_key", "type_id", "item_name", "sell_price", "buy_price", "daily_volume"},
	"character_assets_snapshots":      {"snapshot_ts", "item_key", "type_id", "item_name", "quantity"},
	"character_open_orders_snapshots": {"snapshot_ts", "item_key", "type_id", "item_name", "volume_remain"},
	"build_cost_cache":                {"config_hash", "computed_ts", "payload_json"},
}
