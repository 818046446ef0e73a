package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/output"
	"github.com/chrisdamba/foodcart/internal/session"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Submit a stored cart as an order",
	Long: `order loads a stored cart, revalidates it against the stored catalog and prints
the order payload. A cart that drifted is corrected and saved instead, and the
drift report is returned as the error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()
		cartID, _ := flags.GetString("cart-id")
		if cartID == "" {
			return errors.New("--cart-id is required")
		}
		serviceType, _ := flags.GetString("service-type")
		if _, ok := models.ServiceTypeNames[serviceType]; !ok {
			return fmt.Errorf("unknown service type %q", serviceType)
		}
		tipText, _ := flags.GetString("tip")
		tip, err := decimal.NewFromString(tipText)
		if err != nil {
			return fmt.Errorf("invalid tip %q: %w", tipText, err)
		}
		persons, _ := flags.GetInt("person-count")
		notes, _ := flags.GetString("notes")
		requestedAt, _ := flags.GetString("requested-at")

		st, err := openStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()

		dest, err := output.NewDestination(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := dest.Close(); err != nil {
				logger.Error("error closing output", zap.Error(err))
			}
		}()

		service := session.NewService(st.catalog, st.carts, dest, logger,
			session.WithPoints(cfg.PointsEnabled),
			session.WithSoldOut(cfg.SoldOutSet()))
		sess, drift, err := service.LoadCart(ctx, cartID)
		if err != nil {
			return err
		}
		if !drift.Empty() {
			// the corrected cart is already stored; it needs another look before ordering
			return drift
		}

		payload, err := service.SubmitOrder(ctx, sess, models.OrderRequest{
			ServiceType: serviceType,
			RequestedAt: requestedAt,
			Details:     &models.OrderDetails{PersonCount: persons, Notes: notes, DeviceType: "CLI"},
			Tip:         &tip,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	flags := orderCmd.Flags()
	flags.String("cart-id", "", "Id of the stored cart")
	flags.String("service-type", models.ServiceTypePickup, "PICKUP, DELIVERY or WALKIN")
	flags.String("requested-at", models.RequestedAtASAP, "Requested time or asap")
	flags.String("tip", "0", "Tip amount")
	flags.Int("person-count", 0, "Number of people the order serves")
	flags.String("notes", "", "Order notes")
	rootCmd.AddCommand(orderCmd)
}
