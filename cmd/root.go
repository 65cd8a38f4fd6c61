package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowerStore",
	Short: "Umer & Umair Flowers storefront backend",
	Long: `flowerStore serves the florist storefront API: the product catalog,
visitor carts and wishlists, event bookings, checkout and the admin dashboard.

Bookings and orders are stored in Postgres, carts and admin sessions in Redis.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
