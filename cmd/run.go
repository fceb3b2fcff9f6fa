package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spigell/job-scout/internal/logger"
	"github.com/spigell/job-scout/internal/scraper"
	"github.com/spigell/job-scout/internal/store"
	"github.com/spigell/job-scout/internal/tgchannel"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the periodic Telegram channel scraper",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run keeps the scraper on its schedule until the process is told to stop.
func run() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-scout scraper",
		zap.String("version", version),
		zap.Int("channels", len(config.Channels)),
	)

	vacancyStore := store.New(config.StoreFile, logger)
	vacancyStore.Load()

	fetcher := tgchannel.New(logger)
	if config.UserAgent != "" {
		fetcher.UserAgent = config.UserAgent
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := scraper.New(fetcher, vacancyStore, config.Channels, logger)
	if err := driver.Start(ctx); err != nil {
		logger.Fatal("starting the scrape schedule", zap.Error(err))
	}

	<-ctx.Done()

	logger.Info("shutting down")
	driver.Stop()
}
