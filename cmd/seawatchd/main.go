package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seawatch/seawatch/internal/config"
)

var (
	configDir string

	rootCmd = &cobra.Command{
		Use:   "seawatchd",
		Short: "Maritime situational awareness daemon",
		Long: `seawatchd ingests vessel track points, dispatches and links
missions to them, and records the session to the configured storage
backend.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := config.Load(configDir); err != nil {
				// defaults still apply without a config file
				fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
			}
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and session recorder",
		RunE:  runServe,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Ingest the predefined demo vessel tracks and exit",
		RunE:  runSimulate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing seawatchd.cfg.json")
	serveCmd.Flags().String("addr", "", "listen address, overrides http.addr from config")
	simulateCmd.Flags().Int("vessels", 0, "number of simulated vessels, overrides sim.vessels")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listenAddr(cmd *cobra.Command) string {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		return addr
	}
	return viper.GetString("http.addr")
}
