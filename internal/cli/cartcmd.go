package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/cart"
	"github.com/quayside/storefront/internal/pricing"
	"github.com/quayside/storefront/internal/schema"
)

// NewCartCommand creates the cart command group.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Cart operations",
	}

	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartSetCommand(rootOpts))
	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartShowCommand(rootOpts))

	return cmd
}

// CartLineOptions holds the line-identity flags shared by cart commands.
type CartLineOptions struct {
	*RootOptions
	Variant string
	Qty     int
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CartLineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Long: `Add quantity of a (product, variant) pair to the cart.

Adding a pair already in the cart merges quantities into the existing
line rather than duplicating it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eng, cleanup, err := openEngine(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := cart.NewManager(eng).Add(cmd.Context(), args[0], opts.Variant, opts.Qty)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(doc.Cart, "cart has %d line(s)", len(doc.Cart))
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "variant (defaults to the product's first)")
	cmd.Flags().IntVar(&opts.Qty, "qty", 1, "quantity to add")

	return cmd
}

func newCartSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CartLineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <product-id>",
		Short: "Set a cart line's quantity",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eng, cleanup, err := openEngine(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := cart.NewManager(eng).SetQuantity(cmd.Context(), args[0], opts.Variant, opts.Qty)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(doc.Cart, "cart has %d line(s)", len(doc.Cart))
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "variant of the line to change")
	cmd.Flags().IntVar(&opts.Qty, "qty", 1, "new quantity (clamped to >= 1)")

	return cmd
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CartLineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Remove a cart line",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eng, cleanup, err := openEngine(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := cart.NewManager(eng).Remove(cmd.Context(), args[0], opts.Variant)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(doc.Cart, "cart has %d line(s)", len(doc.Cart))
		},
	}

	cmd.Flags().StringVar(&opts.Variant, "variant", "", "variant of the line to remove")

	return cmd
}

// CartView is the JSON payload for `cart show`: the lines plus the
// priced quote for the current session.
type CartView struct {
	Lines []schema.CartLine `json:"lines"`
	Quote pricing.Quote     `json:"quote"`
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and the priced totals",
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

			view := CartView{Lines: doc.Cart, Quote: pricing.QuoteDocument(doc, eng.Now())}
			if rootOpts.Format == "json" {
				return formatter.Success(view)
			}

			out := cmd.OutOrStdout()
			for _, line := range view.Lines {
				name := line.ProductID
				if p := doc.FindProduct(line.ProductID); p != nil {
					name = p.Name
				}
				fmt.Fprintf(out, "%-28s %-8s x%d\n", name, line.Variant, line.Qty)
			}
			fmt.Fprintf(out, "subtotal: %s\n", formatMoney(view.Quote.Subtotal))
			for _, d := range view.Quote.Discounts {
				fmt.Fprintf(out, "%s: -%s\n", d.Label, formatMoney(d.Amount))
			}
			fmt.Fprintf(out, "shipping: %s\n", formatMoney(view.Quote.Shipping))
			fmt.Fprintf(out, "total: %s\n", formatMoney(view.Quote.Total))
			return nil
		},
	}
	return cmd
}
