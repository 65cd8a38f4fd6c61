package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"flowerStore/config"
	"flowerStore/entities"
	"flowerStore/repository"
	"flowerStore/services"

	"github.com/spf13/cobra"
)

var backupOut string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export all bookings and orders as JSON",
	Long: `Writes the same document the dashboard export produces. Without --out
the backup goes to stdout.`,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().StringVarP(&backupOut, "out", "o", "", "File to write the backup to")
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	cb := newBreaker(cfg)
	bR, err := repository.NewBookingRepository(db, cb)
	if err != nil {
		return err
	}
	oR, err := repository.NewOrderRepository(db, cb)
	if err != nil {
		return err
	}
	as := services.NewAdminService(services.AdminParams{BookingRepo: bR, OrderRepo: oR})
	return exportBackup(cmd.Context(), &as, backupOut, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

type backupSource interface {
	Export(ctx context.Context) (entities.Backup, error)
}

// exportBackup loads everything before touching out, so a store failure
// leaves an earlier backup in place.
func exportBackup(ctx context.Context, src backupSource, out string, stdout, stderr io.Writer) error {
	backup, err := src.Export(ctx)
	if err != nil {
		return fmt.Errorf("failed to load backup: %w", err)
	}
	if out == "" {
		return writeBackup(stdout, backup)
	}

	var buf bytes.Buffer
	if err := writeBackup(&buf, backup); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(stderr, "%d bookings and %d orders written to %s\n",
		len(backup.Bookings), len(backup.Orders), out)
	return nil
}

func writeBackup(w io.Writer, backup entities.Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}
