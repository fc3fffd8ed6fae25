package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runSimulate ingests the demo tracks, flushes and exports the session
// without starting the HTTP server.
func runSimulate(cmd *cobra.Command, args []string) error {
	sessionStart := time.Now()

	a, err := buildApp(sessionStart)
	if err != nil {
		return err
	}
	defer a.close()

	vessels, _ := cmd.Flags().GetInt("vessels")
	if vessels == 0 {
		vessels = viper.GetInt("sim.vessels")
	}

	ingestSimulatedTracks(a, vessels)
	a.worker.Flush()

	points, missions, links := a.missions.Counts()
	a.log.Info().
		Int("trackPoints", points).
		Int("missions", missions).
		Int("links", links).
		Msg("Simulation complete")
	return nil
}
