package cmd

import (
	"time"

	"lendpool/core"
	oracleservice "lendpool/service/oracle"
	poolservice "lendpool/service/pool"
	tokenservice "lendpool/service/token"
	"lendpool/store/event"
	"lendpool/store/ledger"
	"lendpool/store/loan"
	"lendpool/store/price"
	"lendpool/store/reserve"
	"lendpool/store/token"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideSystem() *core.System {
	return &core.System{
		Admins:      cfg.Admins,
		Liquidators: cfg.Liquidators,
		Version:     rootCmd.Version,
	}
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideReserveStore(db *db.DB) core.IReserveStore {
	return reserve.New(db)
}

func provideLoanStore(db *db.DB) core.ILoanStore {
	return loan.New(db)
}

func provideLedgerStore(db *db.DB) core.ILedgerStore {
	return ledger.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideTokenStore(db *db.DB) core.ITokenStore {
	return token.New(db)
}

// ------------------service------------------------------------

func provideFeeds() map[string]core.PriceFeed {
	feeds := make(map[string]core.PriceFeed, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		feeds[f.ID] = oracleservice.NewHTTPFeed(f.Endpoint)
	}

	return feeds
}

func provideOracleService() core.IPriceOracleService {
	return oracleservice.New(provideFeeds(), oracleservice.Config{
		MaxAge: time.Duration(cfg.Oracle.MaxAgeSeconds) * time.Second,
	})
}

func provideTokenLedger(db *db.DB) core.TokenLedger {
	return tokenservice.New(db, provideTokenStore(db))
}

func providePoolService(db *db.DB) core.IPoolService {
	return poolservice.New(
		db,
		provideSystem(),
		providePropertyStore(db),
		provideReserveStore(db),
		provideLoanStore(db),
		provideLedgerStore(db),
		provideEventStore(db),
		provideOracleService(),
		provideTokenLedger(db),
		poolservice.Config{
			PoolAccountID:     cfg.App.PoolAccountID,
			CollateralAssetID: cfg.App.CollateralAssetID,
		},
	)
}
