package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relaforg/fly-in/engine"
	"github.com/relaforg/fly-in/logline"
	"github.com/relaforg/fly-in/routing"
)

var (
	fleetPath string
	logLevel  string
	maxTurns  int
)

var rootCmd = &cobra.Command{
	Use:   "flyinctl",
	Short: "Route a drone fleet across a hub graph",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Schedule the fleet and print its turn-by-turn movement log",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)

		spec, err := LoadFleetSpec(fleetPath)
		if err != nil {
			return err
		}
		g, err := spec.Build()
		if err != nil {
			return fmt.Errorf("building graph: %w", err)
		}

		history, err := engine.Run(g, engine.WithMaxTurns(maxTurns))
		if err != nil {
			return err
		}

		fmt.Print(logline.Render(history))

		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the reverse-cost BFS candidate table for every hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := LoadFleetSpec(fleetPath)
		if err != nil {
			return err
		}
		g, err := spec.Build()
		if err != nil {
			return fmt.Errorf("building graph: %w", err)
		}

		candidates, err := routing.BuildCandidates(g)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(candidates))
		for name := range candidates {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s:", name)
			for _, rec := range candidates[name] {
				fmt.Printf(" %s(%d)", rec.SrcName, rec.Cost)
			}
			fmt.Println()
		}

		return nil
	},
}

// Execute runs the root command, exiting with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fleetPath, "fleet", "", "path to the YAML fleet/graph definition")
	_ = rootCmd.MarkPersistentFlagRequired("fleet")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	runCmd.Flags().IntVar(&maxTurns, "max-turns", 0, "abort with an error after this many turns (0 = unbounded)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pathsCmd)
}
