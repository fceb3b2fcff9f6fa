package cmd

import (
	"context"
	"log"

	"github.com/spigell/job-scout/internal/logger"
	"github.com/spigell/job-scout/internal/scraper"
	"github.com/spigell/job-scout/internal/store"
	"github.com/spigell/job-scout/internal/tgchannel"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape all configured channels once and exit",
	Run: func(_ *cobra.Command, _ []string) {
		scrape()
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func scrape() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	vacancyStore := store.New(config.StoreFile, logger)
	vacancyStore.Load()

	fetcher := tgchannel.New(logger)
	if config.UserAgent != "" {
		fetcher.UserAgent = config.UserAgent
	}

	driver := scraper.New(fetcher, vacancyStore, config.Channels, logger)
	driver.RunCycle(context.Background())

	logger.Info("stored vacancies", zap.Int("count", vacancyStore.Len()))
}
