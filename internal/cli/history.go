package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetrainer/internal/stats"
	"github.com/SeamusWaldron/cubetrainer/internal/storage"
)

var (
	historyAlgorithm string
	historyLimit     int
	historyStats     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent training attempts",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyAlgorithm, "algorithm", "a", "", "Only show attempts of one algorithm")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of attempts to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show trends over the listed attempts")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewAttemptRepository(db)

	var attempts []storage.AttemptRecord
	if historyAlgorithm != "" {
		attempts, err = repo.ListByAlgorithm(historyAlgorithm, historyLimit)
	} else {
		attempts, err = repo.List(historyLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(attempts) == 0 {
		fmt.Fprintln(out, "No attempts recorded yet. Start one with: cubetrainer drill <algorithm-id>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tALGORITHM\tMODE\tTIME\tMOVES\tMISTAKES\tRESULT")
	for _, a := range attempts {
		result := "abandoned"
		if a.Completed {
			result = formatStars(a.Stars)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			a.StartedAt.Local().Format("2006-01-02 15:04"),
			a.AlgorithmID, a.Mode, formatDuration(a.Duration), a.Moves, a.Mistakes, result)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if historyAlgorithm != "" {
		best, err := repo.Best(historyAlgorithm)
		if err != nil {
			return err
		}
		if best != nil {
			fmt.Fprintf(out, "\nBest: %s %s\n", formatDuration(best.Duration), formatStars(best.Stars))
		}
	}

	if historyStats {
		printTrends(cmd, attempts)
	}
	return nil
}

func printTrends(cmd *cobra.Command, attempts []storage.AttemptRecord) {
	samples := make([]stats.Sample, 0, len(attempts))
	for _, a := range attempts {
		samples = append(samples, stats.Sample{
			AttemptID:   a.AttemptID,
			AlgorithmID: a.AlgorithmID,
			StartedAt:   a.StartedAt,
			Duration:    a.Duration,
			Moves:       a.Moves,
			Mistakes:    a.Mistakes,
			Stars:       a.Stars,
			Completed:   a.Completed,
		})
	}
	r := stats.AnalyzeTrends(samples)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nCompleted: %d of %d\n", r.CompletedAttempts, r.TotalAttempts)
	if r.CompletedAttempts == 0 {
		return
	}
	fmt.Fprintf(out, "Average:   %s (%.1f mistakes, %.0f%% clean)\n", formatDuration(r.AvgDuration), r.AvgMistakes, r.CleanRate)
	fmt.Fprintf(out, "Range:     %s to %s\n", formatDuration(r.Best.Duration), formatDuration(r.Worst.Duration))
	for _, w := range stats.RollingWindows {
		if avg, ok := r.RollingAvgs[w]; ok {
			fmt.Fprintf(out, "Last %-5d %s\n", w, formatDuration(avg))
		}
	}
	if r.CompletedAttempts >= 4 {
		fmt.Fprintf(out, "Improved:  %+.0f%%\n", r.ImprovementPct)
	}
	fmt.Fprintf(out, "Consistency: %.0f/100\n", r.ConsistencyScore)
	fmt.Fprintf(out, "Stars:     %s %d  %s %d  %s %d\n",
		formatStars(3), r.StarCounts[3], formatStars(2), r.StarCounts[2], formatStars(1), r.StarCounts[1])
}
