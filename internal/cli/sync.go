package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"farmsync/internal/app/usecases"
)

var syncAll bool

var syncCmd = &cobra.Command{
	Use:   "sync [product-id...]",
	Short: "Push price list updates to the marketplace",
	Long:  "Recomputes adjusted prices for every configured price list and pushes them, one product at a time. Safe to re-run.",
	Run: func(cmd *cobra.Command, args []string) {
		if !syncAll && len(args) == 0 {
			_ = cmd.Help()
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		defer a.Close()

		sync := usecases.NewPriceListSync(a.store, a.market, a.cfg.Pricing, a.log, a.notifier)
		ctx := context.Background()

		if syncAll {
			if err := sync.SyncAllProducts(ctx); err != nil {
				a.log.Errorw("batch sync failed", "error", err)
				os.Exit(1)
			}
			return
		}

		exitCode := 0
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				cmd.PrintErrf("invalid product id %q\n", arg)
				exitCode = 1
				continue
			}
			if _, err := sync.SyncProduct(ctx, id); err != nil {
				a.log.Errorw("product sync failed", "product_id", id, "error", err)
				exitCode = 1
			}
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var linkCmd = &cobra.Command{
	Use:   "link <product-id> <price-list-id>",
	Short: "Add a product to a marketplace price list",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			cmd.PrintErrf("invalid product id %q\n", args[0])
			os.Exit(1)
		}
		priceListID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			cmd.PrintErrf("invalid price list id %q\n", args[1])
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
		defer a.Close()

		sync := usecases.NewPriceListSync(a.store, a.market, a.cfg.Pricing, a.log, a.notifier)
		if err := sync.LinkProduct(context.Background(), productID, priceListID); err != nil {
			a.log.Errorw("link failed", "product_id", productID, "price_list_id", priceListID, "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "sync every product flagged for the marketplace")
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(linkCmd)
}
