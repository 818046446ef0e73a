package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/chrisdamba/foodcart/internal/output"
	"github.com/chrisdamba/foodcart/internal/simulator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate shoppers building carts while the menu drifts",
	Long: `simulate plays shoppers who add, change and abandon carts, come back after the
menu has changed and check out. Cart events go to the configured destination
(console, json, parquet or Kafka) and the final counts are printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()

		dest, err := output.NewDestination(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := dest.Close(); err != nil {
				logger.Error("error closing output", zap.Error(err))
			}
		}()

		opts := []simulator.Option{simulator.WithProgress(os.Stderr)}
		if start, _ := cmd.Flags().GetString("start"); start != "" {
			at, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return err
			}
			opts = append(opts, simulator.WithStart(at))
		}

		sim := simulator.NewSimulator(cfg, st.catalog, st.carts, dest, logger, opts...)
		stats, err := sim.Run(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	flags := simulateCmd.Flags()
	flags.Int64("seed", 42, "Random seed for simulation")
	flags.Int("sessions", 100, "Number of shopping sessions")
	flags.Int("items", 25, "Number of menu items")
	flags.Float64("drift-rate", 0.1, "Share of menu items changed at each catalog drift")
	flags.Float64("sold-out-rate", 0.05, "Share of menu ids sold out at each catalog drift")
	flags.Duration("think-time", 45*time.Second, "Average simulated time between shopper actions")
	flags.String("start", "", "Simulated start time (RFC3339)")
	flags.Bool("kafka-enabled", false, "Enable Kafka output")
	flags.StringSlice("kafka-broker-list", []string{"localhost:9092"}, "Kafka broker list")
	flags.String("output-destination", "console", "Output destination when Kafka is disabled: console, json or parquet")
	flags.String("output-path", "", "Output path for json and parquet files")

	bindFlag("simulation.seed", flags.Lookup("seed"))
	bindFlag("simulation.sessions", flags.Lookup("sessions"))
	bindFlag("simulation.items", flags.Lookup("items"))
	bindFlag("simulation.drift_rate", flags.Lookup("drift-rate"))
	bindFlag("simulation.sold_out_rate", flags.Lookup("sold-out-rate"))
	bindFlag("simulation.think_time", flags.Lookup("think-time"))
	bindFlag("kafka.enabled", flags.Lookup("kafka-enabled"))
	bindFlag("kafka.broker_list", flags.Lookup("kafka-broker-list"))
	bindFlag("output.destination", flags.Lookup("output-destination"))
	bindFlag("output.path", flags.Lookup("output-path"))

	rootCmd.AddCommand(simulateCmd)
}
