package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/chrisdamba/foodcart/internal/cart"
	"github.com/chrisdamba/foodcart/internal/factories"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Generate, load and inspect catalog snapshots",
}

var catalogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fake menu snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, _ := cmd.Flags().GetInt("items")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		menu := factories.NewCatalogFactory(seed).CreateMenu(items)
		menu.SoldOut = cfg.SoldOut
		if err := writeMenu(cmd.Context(), out, menu); err != nil {
			return err
		}
		logger.Info("menu generated", zap.Int("items", len(menu.Items())), zap.String("out", out))
		return nil
	},
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace the stored catalog with a menu snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		source, _ := cmd.Flags().GetString("source")
		menu, err := readMenu(ctx, source)
		if err != nil {
			return err
		}

		st, err := openStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()

		if err := st.catalog.DeleteAll(ctx); err != nil {
			return err
		}
		if err := st.catalog.BulkCreate(ctx, menu.Items()); err != nil {
			return err
		}
		if err := st.catalog.SetSoldOut(ctx, menu.SoldOut); err != nil {
			return err
		}
		count, err := st.catalog.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %s items into the %s store\n", cart.FormatQuantity(count), cfg.Store.Driver)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a menu snapshot with display prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		menu, err := readMenu(cmd.Context(), source)
		if err != nil {
			return err
		}
		soldOut := cfg.SoldOutSet()
		for _, id := range menu.SoldOut {
			soldOut[id] = struct{}{}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tPRICE\tCALORIES\t")
		for _, item := range menu.Items() {
			name := item.Name
			if soldOut.Contains(item.ID) {
				name += " (sold out)"
			}
			built := cart.MakeOrderItem(item, cart.ItemOptions{SoldOut: soldOut})
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", item.ID, item.CategoryName, name,
				cart.MakeDisplayPrice(item), cart.CaloriesLabel(built.Cals))
		}
		return w.Flush()
	},
}

func init() {
	catalogGenerateCmd.Flags().Int("items", 25, "Number of menu items")
	catalogGenerateCmd.Flags().Int64("seed", 42, "Random seed for the generated menu")
	catalogGenerateCmd.Flags().String("out", "menu.json", "Destination file or s3://bucket/key")

	catalogLoadCmd.Flags().String("source", "menu.json", "Menu file or s3://bucket/key")
	catalogShowCmd.Flags().String("source", "menu.json", "Menu file or s3://bucket/key")

	catalogCmd.AddCommand(catalogGenerateCmd, catalogLoadCmd, catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}
