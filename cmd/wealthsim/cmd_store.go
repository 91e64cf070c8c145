package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/simaogato/wealthsim/internal/usecase/seeder"
	"github.com/simaogato/wealthsim/internal/usecase/simulation"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo simulations if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := seeder.NewDemoSeeder(store.Simulations, store.Allocations).Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seeding: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo simulations seeded")
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored simulations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			sims, err := simulation.NewSimulationService(store.Simulations).List(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				out := make([]map[string]any, 0, len(sims))
				for _, sim := range sims {
					out = append(out, map[string]any{
						"id":        sim.ID.String(),
						"name":      sim.Name,
						"startDate": sim.StartDate.Format(time.DateOnly),
						"realRate":  sim.RealRate.String(),
						"createdAt": sim.CreatedAt,
					})
				}
				return writeJSON(cmd, out)
			}

			if len(sims) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no simulations")
				return nil
			}
			w := cmd.OutOrStdout()
			for _, sim := range sims {
				fmt.Fprintf(w, "%s  %-24s start %s  rate %s%%  created %s\n",
					sim.ID,
					sim.Name,
					sim.StartDate.Format(time.DateOnly),
					sim.RealRate.Shift(2).String(),
					humanize.Time(sim.CreatedAt),
				)
			}
			return nil
		},
	}
}
