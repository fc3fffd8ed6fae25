// Package monitor reports runtime health on a fixed interval: store
// sizes, write queue depths and the last flush duration.
package monitor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/seawatch/seawatch/internal/store"
	"github.com/seawatch/seawatch/internal/worker"
	"github.com/spf13/viper"
)

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Store         *store.Store
	Queues        *worker.Queues
	WorkerManager *worker.Manager
	Logger        zerolog.Logger
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Report logs one status line.
func (s *Service) Report() {
	points, missions, links := s.deps.Store.Counts()
	qPoints, qMissions, qLinks, qEvents := s.deps.Queues.Depths()

	s.deps.Logger.Info().
		Int("trackPoints", points).
		Int("missions", missions).
		Int("links", links).
		Int("queuedPoints", qPoints).
		Int("queuedMissions", qMissions).
		Int("queuedLinks", qLinks).
		Int("queuedEvents", qEvents).
		Dur("lastFlush", s.deps.WorkerManager.LastFlushDuration()).
		Msg("Status")
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	interval := time.Duration(viper.GetInt("monitor.intervalSeconds")) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.Report()
			}
		}
	}()

	return nil
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
