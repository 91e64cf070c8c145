package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/simaogato/wealthsim/internal/adapter/chart"
	"github.com/simaogato/wealthsim/internal/domain"
	"github.com/simaogato/wealthsim/internal/logging"
	"github.com/simaogato/wealthsim/internal/usecase/comparison"
	"github.com/simaogato/wealthsim/internal/usecase/projection"
)

type projectionFlags struct {
	rate    string
	start   int
	end     int
	initial string
	monthly string
}

func (f *projectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rate, "rate", "0.04", "Real annual growth rate as a fraction")
	cmd.Flags().IntVar(&f.start, "start", time.Now().Year(), "First projected year")
	cmd.Flags().IntVar(&f.end, "end", projection.DefaultEndYear, "Last projected year")
	cmd.Flags().StringVar(&f.initial, "initial", projection.DefaultInitialValue.String(), "Initial value")
	cmd.Flags().StringVar(&f.monthly, "monthly", projection.DefaultMonthlyContribution.String(), "Monthly contribution")
}

// params validates the flags and builds engine parameters
func (f *projectionFlags) params() (projection.Params, error) {
	verr := &domain.ValidationError{}

	rate, err := decimal.NewFromString(f.rate)
	if err != nil {
		verr.Add("rate", "invalid number")
	} else if rate.IsNegative() {
		verr.Add("rate", "rate must be greater than or equal to 0")
	}
	initial, err := decimal.NewFromString(f.initial)
	if err != nil {
		verr.Add("initial", "invalid number")
	}
	monthly, err := decimal.NewFromString(f.monthly)
	if err != nil {
		verr.Add("monthly", "invalid number")
	}

	if err := verr.OrNil(); err != nil {
		return projection.Params{}, err
	}
	return projection.Params{
		InitialValue:        initial,
		MonthlyContribution: monthly,
		YearlyRate:          rate,
		StartYear:           f.start,
		EndYear:             f.end,
	}, nil
}

func newProjectCmd() *cobra.Command {
	var flags projectionFlags

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Compute a yearly projection without touching the store",
		Example: `  wealthsim project --rate 0.05 --start 2024 --end 2025
  wealthsim project --rate 0.03 --initial 25000 --monthly 1000 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params()
			if err != nil {
				return err
			}
			points := projection.Project(p)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd, projectionJSON(points))
			}

			printer := newPrinter(cmd)
			w := cmd.OutOrStdout()
			if len(points) == 0 {
				fmt.Fprintln(w, "empty projection: start year is after end year")
				return nil
			}
			for _, point := range points {
				printer.Fprintf(w, "%d  %14.2f\n", point.Year, point.TotalValue.InexactFloat64())
			}
			last := points[len(points)-1]
			fmt.Fprintf(w, "%d years, final value %s\n",
				len(points),
				humanize.CommafWithDigits(last.TotalValue.InexactFloat64(), 2),
			)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <simulation-id>...",
		Short: "Compare the projections of stored simulations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uuid.UUID, 0, len(args))
			verr := &domain.ValidationError{}
			for i, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					verr.Add(strconv.Itoa(i), "invalid id "+arg)
					continue
				}
				ids = append(ids, id)
			}
			if err := verr.OrNil(); err != nil {
				return err
			}

			store, cfg, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			service := comparison.NewComparisonService(store.Simulations, cfg.Compare.MaxConcurrency, logger)
			outcomes, err := service.Compare(cmd.Context(), ids)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				results := make(map[string]any)
				for id, points := range comparison.Results(outcomes) {
					results[id] = projectionJSON(points)
				}
				return writeJSON(cmd, results)
			}

			printer := newPrinter(cmd)
			w := cmd.OutOrStdout()
			for _, outcome := range outcomes {
				if !outcome.Found {
					fmt.Fprintf(w, "%s  not found\n", outcome.SimulationID)
					continue
				}
				if len(outcome.Projection) == 0 {
					fmt.Fprintf(w, "%s  %s  empty projection\n", outcome.SimulationID, outcome.Name)
					continue
				}
				last := outcome.Projection[len(outcome.Projection)-1]
				printer.Fprintf(w, "%s  %-24s %d  %14.2f\n", outcome.SimulationID, outcome.Name, last.Year, last.TotalValue.InexactFloat64())
			}
			return nil
		},
	}

	return cmd
}

func newChartCmd() *cobra.Command {
	var flags projectionFlags
	var output string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a projection as a PNG line chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.params()
			if err != nil {
				return err
			}

			title := fmt.Sprintf("%s%% real, %d-%d", p.YearlyRate.Shift(2).String(), p.StartYear, p.EndYear)
			img, err := chart.NewRenderer(0).Projection("", title, projection.Project(p))
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, img, 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", output, humanize.Bytes(uint64(len(img))))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "projection.png", "Output file")

	return cmd
}

func projectionJSON(points []domain.YearProjection) []map[string]any {
	out := make([]map[string]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{
			"year":       p.Year,
			"totalValue": json.Number(p.TotalValue.StringFixed(2)),
		})
	}
	return out
}

func newPrinter(cmd *cobra.Command) *message.Printer {
	locale, _ := cmd.Flags().GetString("locale")
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
