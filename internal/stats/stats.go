// Package stats keeps a small JSON ledger of known users, search volume
// and per-user free generation usage.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionCover = "cover"
	ActionAdapt = "adapt"

	// Each user gets one free generation of each kind.
	FreeCoverLimit = 1
	FreeAdaptLimit = 1
)

type Usage struct {
	Cover int `json:"cover"`
	Adapt int `json:"adapt"`
}

type ledger struct {
	Users         []int64          `json:"users"`
	TotalSearches int              `json:"total_searches"`
	FreeUsage     map[string]Usage `json:"free_usage"`
}

type Snapshot struct {
	Users         int
	TotalSearches int
}

type Ledger struct {
	mu     sync.Mutex
	path   string
	data   ledger
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Ledger {
	return &Ledger{
		path:   path,
		logger: logger,
		data: ledger{
			Users:     []int64{},
			FreeUsage: map[string]Usage{},
		},
	}
}

// Load reads the ledger file. Missing or corrupt files start a fresh
// ledger and are rewritten on the next mutation.
func (l *Ledger) Load() {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("reading stats ledger", zap.Error(err))
		}
		return
	}

	var data ledger
	if err := json.Unmarshal(raw, &data); err != nil {
		l.logger.Warn("stats ledger is corrupt, starting empty", zap.Error(err))
		return
	}

	if data.Users == nil {
		data.Users = []int64{}
	}
	if data.FreeUsage == nil {
		data.FreeUsage = map[string]Usage{}
	}
	l.data = data
}

func (l *Ledger) save() error {
	raw, err := json.MarshalIndent(l.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(l.path, raw, 0o644)
}

// TrackUser records a user the first time it is seen.
func (l *Ledger) TrackUser(userID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range l.data.Users {
		if id == userID {
			return nil
		}
	}

	l.data.Users = append(l.data.Users, userID)

	return l.save()
}

// TrackSearch bumps the global search counter.
func (l *Ledger) TrackSearch() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.data.TotalSearches++

	return l.save()
}

// CanUseFree reports whether the user still has free quota for the action.
func (l *Ledger) CanUseFree(userID int64, action string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	usage := l.data.FreeUsage[key(userID)]
	switch action {
	case ActionCover:
		return usage.Cover < FreeCoverLimit
	case ActionAdapt:
		return usage.Adapt < FreeAdaptLimit
	}

	return false
}

// MarkFreeUsed consumes one unit of the user's free quota for the action.
func (l *Ledger) MarkFreeUsed(userID int64, action string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(userID)
	usage := l.data.FreeUsage[k]
	switch action {
	case ActionCover:
		usage.Cover++
	case ActionAdapt:
		usage.Adapt++
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	l.data.FreeUsage[k] = usage

	return l.save()
}

// Stats returns the counters for reporting.
func (l *Ledger) Stats() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{
		Users:         len(l.data.Users),
		TotalSearches: l.data.TotalSearches,
	}
}

func key(userID int64) string {
	return fmt.Sprintf("%d", userID)
}
