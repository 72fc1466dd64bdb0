package config

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lendpool node config
type Config struct {
	App         App       `json:"app"`
	DB          db.Config `json:"db"`
	Oracle      Oracle    `json:"oracle"`
	Feeds       []Feed    `json:"feeds"`
	Admins      []string  `json:"admins"`
	Liquidators []string  `json:"liquidators"`
}

// App app config
type App struct {
	// PoolAccountID the ledger account holding the pool's assets
	PoolAccountID string `json:"pool_account_id"`
	// CollateralAssetID the single collateral asset
	CollateralAssetID string `json:"collateral_asset_id"`
	Location          string `json:"location"`
}

// Oracle oracle config
type Oracle struct {
	// MaxAgeSeconds reject feed rounds older than this, zero disables
	// the age check
	MaxAgeSeconds int64 `json:"max_age_seconds"`
}

// Feed one external price feed endpoint
type Feed struct {
	ID       string `json:"id"`
	Endpoint string `json:"endpoint"`
}
