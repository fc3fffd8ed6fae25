package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seawatch/seawatch/internal/api"
	"github.com/seawatch/seawatch/internal/canon"
	"github.com/seawatch/seawatch/internal/config"
	"github.com/seawatch/seawatch/internal/events"
	"github.com/seawatch/seawatch/internal/influx"
	"github.com/seawatch/seawatch/internal/linking"
	"github.com/seawatch/seawatch/internal/logging"
	"github.com/seawatch/seawatch/internal/mission"
	"github.com/seawatch/seawatch/internal/monitor"
	"github.com/seawatch/seawatch/internal/otel"
	"github.com/seawatch/seawatch/internal/sim"
	"github.com/seawatch/seawatch/internal/storage"
	"github.com/seawatch/seawatch/internal/store"
	"github.com/seawatch/seawatch/internal/worker"
)

// app bundles everything a running session needs.
type app struct {
	log       zerolog.Logger
	missions  *mission.Manager
	events    *events.Store
	queues    *worker.Queues
	worker    *worker.Manager
	monitor   *monitor.Service
	backend   storage.Backend
	influx    *influx.Manager
	telemetry *otel.Provider
	shutdown  func()
}

// buildApp wires the domain layer, storage and observability from the
// loaded config.
func buildApp(sessionStart time.Time) (*app, error) {
	log, closeLog, err := logging.New(sessionStart)
	if err != nil {
		return nil, err
	}

	backend, err := storage.NewBackend(config.Storage(), log)
	if err != nil {
		closeLog()
		return nil, err
	}
	if err := backend.Init(); err != nil {
		closeLog()
		return nil, fmt.Errorf("storage init: %w", err)
	}

	sessionName := fmt.Sprintf("session_%s", sessionStart.Format("20060102_150405"))
	if err := backend.StartSession(sessionName, viper.GetString("sessionTag"), sessionStart); err != nil {
		closeLog()
		return nil, fmt.Errorf("start session: %w", err)
	}

	st := store.New()
	engine := linking.New(st, log)
	missions := mission.NewManager(engine, canon.New(), log)
	eventStore := events.NewStore(log)

	queues := worker.NewQueues()
	missions.AddSink(queues)
	engine.AddSink(queues)
	eventStore.AddSink(queues)

	workerManager := worker.NewManager(queues, backend, log)

	var telemetry *otel.Provider
	if viper.GetBool("otel.enabled") {
		telemetryPath := filepath.Join(viper.GetString("logsDir"),
			fmt.Sprintf("telemetry_%s.log", sessionStart.Format("20060102_150405")))
		telemetryFile, err := os.Create(telemetryPath)
		if err != nil {
			log.Warn().Err(err).Msg("Telemetry file unavailable, telemetry disabled")
		} else {
			telemetry, err = otel.New(otel.Config{
				Enabled:      true,
				ServiceName:  "seawatchd",
				BatchTimeout: 10 * time.Second,
				LogWriter:    telemetryFile,
				Endpoint:     viper.GetString("otel.endpoint"),
				Insecure:     viper.GetBool("otel.insecure"),
			})
			if err != nil {
				log.Warn().Err(err).Msg("Telemetry setup failed, telemetry disabled")
				telemetry = nil
			}
		}
	}

	var influxManager *influx.Manager
	if viper.GetBool("influx.enabled") {
		backupPath := filepath.Join(viper.GetString("logsDir"),
			fmt.Sprintf("influx_backup_%s.gz", sessionStart.Format("20060102_150405")))
		influxManager = influx.NewManager(log, backupPath)
		if err := influxManager.Connect(); err != nil {
			log.Warn().Err(err).Msg("InfluxDB unavailable, link metrics disabled")
			influxManager = nil
		} else {
			engine.AddSink(influxManager)
		}
	}

	monitorService := monitor.NewService(monitor.Dependencies{
		Store:         st,
		Queues:        queues,
		WorkerManager: workerManager,
		Logger:        log,
	})

	return &app{
		log:       log,
		missions:  missions,
		events:    eventStore,
		queues:    queues,
		worker:    workerManager,
		monitor:   monitorService,
		backend:   backend,
		influx:    influxManager,
		telemetry: telemetry,
		shutdown:  closeLog,
	}, nil
}

func (a *app) close() {
	a.monitor.Stop()
	a.worker.Flush()
	if err := a.backend.EndSession(); err != nil {
		fmt.Fprintf(os.Stderr, "end session: %v\n", err)
	}
	if err := a.backend.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close storage: %v\n", err)
	}
	if a.influx != nil {
		a.influx.Close()
	}
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", err)
		}
	}
	a.shutdown()
}

func runServe(cmd *cobra.Command, args []string) error {
	sessionStart := time.Now()

	a, err := buildApp(sessionStart)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go a.worker.Start(ctx)
	if err := a.monitor.Start(); err != nil {
		return err
	}

	if viper.GetBool("sim.enabled") {
		go ingestSimulatedTracks(a, viper.GetInt("sim.vessels"))
	}

	server := api.NewServer(a.missions, a.events, a.log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listenAddr(cmd))
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// ingestSimulatedTracks feeds the predefined demo routes through the
// normal ingest path.
func ingestSimulatedTracks(a *app, vessels int) {
	gen := sim.New(nil)
	types := sim.VesselTypes()
	if vessels <= 0 || vessels > len(types) {
		vessels = len(types)
	}
	for _, shipType := range types[:vessels] {
		for _, raw := range gen.TrackPoints(shipType) {
			if _, err := a.missions.CreateTrackPoint(raw); err != nil {
				fmt.Fprintf(os.Stderr, "simulated point rejected: %v\n", err)
			}
		}
	}
}
