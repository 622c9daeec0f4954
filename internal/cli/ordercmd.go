package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/cart"
)

// NewOrderCommand creates the order command group.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Checkout operations",
	}

	cmd.AddCommand(newOrderPlaceCommand(rootOpts))
	cmd.AddCommand(newOrderListCommand(rootOpts))

	return cmd
}

// PlaceOptions holds flags for order place.
type PlaceOptions struct {
	*RootOptions
	Method   string
	Receiver cart.ReceiverInfo
}

func newOrderPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlaceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Convert the cart into an order",
		Long: `Place an order from the current cart.

Requires a logged-in member and a non-empty cart. The cart is cleared
and the order recorded atomically; totals come from the pricing rules
in settings.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eng, cleanup, err := openEngine(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			order, _, err := cart.NewManager(eng).PlaceOrder(cmd.Context(), opts.Method, opts.Receiver)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(order, "order %s placed: total %s (%d line(s))",
				order.ID, formatMoney(order.Totals.Total), len(order.Lines))
		},
	}

	cmd.Flags().StringVar(&opts.Method, "method", "home", "shipping method")
	cmd.Flags().StringVar(&opts.Receiver.Name, "receiver", "", "receiver name (defaults to the member's)")
	cmd.Flags().StringVar(&opts.Receiver.Phone, "receiver-phone", "", "receiver phone")
	cmd.Flags().StringVar(&opts.Receiver.Address, "address", "", "delivery address (defaults to the member's)")

	return cmd
}

func newOrderListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all orders, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eng, cleanup, err := openEngine(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := eng.Snapshot(cmd.Context())
			if err != nil {
				return rejectionExit(formatter, err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(doc.Orders)
			}
			out := cmd.OutOrStdout()
			for _, o := range doc.Orders {
				fmt.Fprintf(out, "%s  %s  member=%s  %s\n",
					o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.MemberID, formatMoney(o.Totals.Total))
			}
			fmt.Fprintf(out, "%d order(s)\n", len(doc.Orders))
			return nil
		},
	}
}
