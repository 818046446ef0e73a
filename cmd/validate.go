package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/chrisdamba/foodcart/internal/cart"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type validateReport struct {
	Cart   models.SimplifiedCart    `json:"cart"`
	Total  decimal.Decimal          `json:"total"`
	Errors *models.ValidationErrors `json:"errors,omitempty"`

	// UnknownItems are saved lines whose item is no longer on the menu.
	UnknownItems []int `json:"unknown_items,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Revalidate a saved cart against a menu snapshot",
	Long: `validate rebuilds a simplified cart from a menu snapshot, drops the lines that can
no longer be ordered as configured and prints the corrected cart with the drift report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, soldOut, simple, err := loadCartInputs(cmd)
		if err != nil {
			return err
		}

		full, _ := cart.RehydrateCart(catalog, simple)
		result := cart.ValidateCart(full, catalog, soldOut)
		logger.Debug("cart validated",
			zap.Int("lines", len(simple)),
			zap.Int("kept", len(result.Cart)))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		unknown := unknownItems(catalog, simple)
		if err := enc.Encode(validateReport{
			Cart:         cart.MakeSimpleCart(result.Cart),
			Total:        cart.CartTotal(result.Cart),
			Errors:       result.Errors,
			UnknownItems: unknown,
		}); err != nil {
			return err
		}

		strict, _ := cmd.Flags().GetBool("strict")
		if !strict {
			return nil
		}
		var errs []error
		if len(unknown) > 0 {
			errs = append(errs, fmt.Errorf("%d saved lines refer to items no longer on the menu", len(unknown)))
		}
		if !result.Errors.Empty() {
			errs = append(errs, result.Errors)
		}
		return errors.Join(errs...)
	},
}

var rehydrateCmd = &cobra.Command{
	Use:   "rehydrate",
	Short: "Price a saved cart against a menu snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, _, simple, err := loadCartInputs(cmd)
		if err != nil {
			return err
		}

		full, counts := cart.RehydrateCart(catalog, simple)
		if dropped := len(simple) - len(full); dropped > 0 {
			logger.Warn("dropped lines for unknown items", zap.Int("dropped", dropped))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tQTY\tITEM\tOPTIONS\tTOTAL\t")
		for n, line := range full {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n", n, cart.FormatQuantity(line.Quantity), line.Name,
				cart.ModifierNames(line), cart.FormatDollars(line.TotalPrice, "", 2))
		}
		fmt.Fprintf(w, "\t%s\tTotal\t\t%s\t\n", cart.FormatQuantity(countItems(counts)), cart.FormatDollars(cart.CartTotal(full), "", 2))
		return w.Flush()
	},
}

// unknownItems lists the item ids of saved lines the catalog no longer has.
func unknownItems(catalog *cart.Catalog, simple models.SimplifiedCart) []int {
	var ids []int
	for _, line := range simple {
		if _, ok := catalog.Item(line.ID); !ok {
			ids = append(ids, line.ID)
		}
	}
	return ids
}

func countItems(counts models.CartCounts) int {
	var n int
	for _, quantity := range counts {
		n += quantity
	}
	return n
}

// loadCartInputs reads the --catalog snapshot and the --cart file shared by
// the offline cart commands.
func loadCartInputs(cmd *cobra.Command) (*cart.Catalog, models.SoldOutSet, models.SimplifiedCart, error) {
	source, _ := cmd.Flags().GetString("catalog")
	cartFile, _ := cmd.Flags().GetString("cart")
	if cartFile == "" {
		return nil, nil, nil, errors.New("--cart is required")
	}

	menu, err := readMenu(cmd.Context(), source)
	if err != nil {
		return nil, nil, nil, err
	}
	var simple models.SimplifiedCart
	if err := readJSONFile(cartFile, &simple); err != nil {
		return nil, nil, nil, fmt.Errorf("read cart: %w", err)
	}

	soldOut := models.NewSoldOutSet(append(menu.SoldOut, cfg.SoldOut...)...)
	return cart.NewCatalogFromMenu(menu), soldOut, simple, nil
}

func init() {
	for _, c := range []*cobra.Command{validateCmd, rehydrateCmd} {
		c.Flags().String("catalog", "menu.json", "Menu file or s3://bucket/key")
		c.Flags().String("cart", "", "Simplified cart JSON file")
		rootCmd.AddCommand(c)
	}
	validateCmd.Flags().Bool("strict", false, "Exit with an error when the cart drifted")
}
