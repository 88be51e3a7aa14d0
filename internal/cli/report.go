package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"farmsync/internal/app/usecases"
)

var (
	reportStart string
	reportEnd   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a POS sales report aggregated by category",
	Long:  "Pulls completed orders from the POS for the given window (default: the previous weekend) and prints gross sales per category and location.",
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := reportWindow(reportStart, reportEnd)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		defer a.Close()

		report, err := usecases.NewSalesReport(a.pos, a.log).Generate(context.Background(), start, end)
		if err != nil {
			a.log.Errorw("report generation failed", "error", err)
			os.Exit(1)
		}

		fmt.Print(report.Render())
		a.notifier.Notify(report.Render())
	},
}

// reportWindow parses the window flags; with neither set it falls back to the
// previous Saturday/Sunday, the market days the report is mailed out for.
func reportWindow(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" && endStr == "" {
		start, end := previousWeekend(time.Now().UTC())
		return start, end, nil
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q: want YYYY-MM-DD", startStr)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q: want YYYY-MM-DD", endStr)
	}
	return start, end.Add(24*time.Hour - time.Second), nil
}

func previousWeekend(now time.Time) (time.Time, time.Time) {
	day := int(now.Weekday())
	offset := day
	if day == 0 {
		offset = 1
	}
	sunday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	saturday := sunday.AddDate(0, 0, -1)
	return saturday, sunday.Add(24*time.Hour - time.Second)
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "window start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "window end (YYYY-MM-DD, inclusive)")
	rootCmd.AddCommand(reportCmd)
}
