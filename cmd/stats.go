package cmd

import (
	"fmt"
	"log"

	"github.com/spigell/job-scout/internal/logger"
	"github.com/spigell/job-scout/internal/stats"
	"github.com/spigell/job-scout/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print usage counters and the vacancy store size",
	Run: func(_ *cobra.Command, _ []string) {
		showStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func showStats() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	ledger := stats.New(config.StatsFile, logger)
	ledger.Load()

	vacancyStore := store.New(config.StoreFile, logger)
	vacancyStore.Load()

	snapshot := ledger.Stats()
	fmt.Printf("users: %d\n", snapshot.Users)
	fmt.Printf("searches: %d\n", snapshot.TotalSearches)
	fmt.Printf("stored vacancies: %d\n", vacancyStore.Len())
}
