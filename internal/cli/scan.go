package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetrainer/internal/smartcube"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GoCube smart cubes",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for GoCube devices (%s)...\n", cfg.ScanTimeout)

	client, err := smartcube.NewClient(logger.WithField("command", "scan"))
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ScanTimeout)
	defer cancel()

	results, err := client.Scan(ctx, cfg.ScanTimeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No GoCube devices found.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To fix this:")
		fmt.Fprintln(out, "  1. Rotate your cube to wake it up")
		fmt.Fprintln(out, "  2. Make sure it's not connected to your phone")
		fmt.Fprintln(out, "  3. Run this command again")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(out, "  %s  %s  (RSSI %d)\n", r.Name, r.ID(), r.RSSI)
	}
	return nil
}
