// Package scraper periodically collects postings from public Telegram
// channels into the vacancy store.
package scraper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spigell/job-scout/internal/utils"
	"github.com/spigell/job-scout/internal/vacancy"
)

const (
	// initialDelay postpones the first cycle so startup traffic settles.
	initialDelay = 120 * time.Second
	schedule     = "@every 12h"
	cycleTimeout = 300 * time.Second
	// channelPause keeps the per-channel request rate polite.
	channelPause = time.Second
)

// ChannelFetcher pulls recent postings from a single channel.
type ChannelFetcher interface {
	FetchChannel(ctx context.Context, channel string) ([]*vacancy.Vacancy, error)
}

// Updater merges a scrape cycle's harvest into persistent storage.
type Updater interface {
	Update(incoming []*vacancy.Vacancy) (int, error)
}

type Driver struct {
	fetcher  ChannelFetcher
	store    Updater
	channels []string
	logger   *zap.Logger
	cron     *cron.Cron
}

func New(fetcher ChannelFetcher, store Updater, channels []string, logger *zap.Logger) *Driver {
	return &Driver{
		fetcher:  fetcher,
		store:    store,
		channels: channels,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start schedules the periodic cycle and kicks off a delayed initial run.
func (d *Driver) Start(ctx context.Context) error {
	if _, err := d.cron.AddFunc(schedule, func() { d.RunCycle(ctx) }); err != nil {
		return err
	}

	go func() {
		if err := utils.WaitFor(ctx, initialDelay); err != nil {
			return
		}
		d.RunCycle(ctx)
	}()

	d.cron.Start()

	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (d *Driver) Stop() {
	<-d.cron.Stop().Done()
}

// RunCycle walks every configured channel once and stores the harvest.
// A failing channel is skipped; the cycle as a whole is bounded by
// cycleTimeout.
func (d *Driver) RunCycle(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	started := time.Now()
	collected := make([]*vacancy.Vacancy, 0)

	for i, channel := range d.channels {
		if i > 0 {
			if err := utils.WaitFor(ctx, channelPause); err != nil {
				d.logger.Warn("scrape cycle interrupted", zap.Error(err))
				break
			}
		}

		found, err := d.fetcher.FetchChannel(ctx, channel)
		if err != nil {
			d.logger.Warn("fetching channel failed",
				zap.String("channel", channel),
				zap.Error(err),
			)
			continue
		}

		d.logger.Debug("channel scraped",
			zap.String("channel", channel),
			zap.Int("postings", len(found)),
		)
		collected = append(collected, found...)
	}

	added, err := d.store.Update(collected)
	if err != nil {
		d.logger.Error("updating vacancy store", zap.Error(err))
		return
	}

	d.logger.Info("scrape cycle finished",
		zap.Int("collected", len(collected)),
		zap.Int("added", added),
		zap.Duration("took", time.Since(started)),
	)
}
