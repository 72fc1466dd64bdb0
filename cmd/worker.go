package cmd

import (
	"lendpool/worker"
	"lendpool/worker/pricesync"
	"lendpool/worker/sentinel"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run lendpool background workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		reserveStore := provideReserveStore(database)
		loanStore := provideLoanStore(database)
		priceStore := providePriceStore(database)
		oracleService := provideOracleService()
		pool := providePoolService(database)

		jobs := []worker.IJob{
			sentinel.New(cfg.App.Location, system, loanStore, reserveStore, oracleService, pool),
			pricesync.New(cfg.App.Location, reserveStore, priceStore, provideFeeds(), oracleService),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start job failed")
			}
		}

		ctx = signal.WithContext(ctx)
		<-ctx.Done()

		for _, job := range jobs {
			job.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
