package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripcal/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripcal",
		Short: "TripCal scheduling API server",
		Long:  `TripCal is a calendar-based trip scheduling service: dated activities, AI itinerary child events, conflict detection and optimistic reconciliation against an event backend.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
