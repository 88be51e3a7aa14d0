package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"farmsync/internal/app/usecases"
	"farmsync/internal/audit"
	"farmsync/internal/domain/model"
)

var (
	inventoryVisible bool
	inventoryTrack   bool
	inventoryStock   int
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory <product-id>",
	Short: "Apply an inventory update locally and mirror it to the marketplace",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			cmd.PrintErrf("invalid product id %q\n", args[0])
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		defer a.Close()

		sync := usecases.NewInventorySync(a.store, a.market, audit.NewCSVLog(a.cfg.Audit.LogPath), a.log, a.notifier)
		status, err := sync.ApplyUpdate(context.Background(), productID, model.InventoryUpdate{
			Visible:        inventoryVisible,
			TrackInventory: inventoryTrack,
			StockQuantity:  inventoryStock,
		})
		if err != nil {
			a.log.Errorw("inventory update rejected", "product_id", productID, "error", err)
			os.Exit(1)
		}
		a.log.Infow("inventory updated",
			"product_id", status.ID,
			"name", status.Name,
			"database", status.DatabaseUpdate,
			"marketplace", status.MarketplaceUpdate)
	},
}

func init() {
	inventoryCmd.Flags().BoolVar(&inventoryVisible, "visible", false, "product is visible on the marketplace")
	inventoryCmd.Flags().BoolVar(&inventoryTrack, "track", false, "track inventory for the product")
	inventoryCmd.Flags().IntVar(&inventoryStock, "stock", 0, "stock quantity to set")
	rootCmd.AddCommand(inventoryCmd)
}
