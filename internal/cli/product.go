package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/catalog"
	"github.com/quayside/storefront/internal/schema"
)

// NewProductCommand creates the product command group.
func NewProductCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Catalog operations",
	}

	cmd.AddCommand(newProductListCommand(rootOpts))
	cmd.AddCommand(newProductAddCommand(rootOpts))
	cmd.AddCommand(newProductRemoveCommand(rootOpts))

	return cmd
}

// ProductListOptions holds flags for product list.
type ProductListOptions struct {
	*RootOptions
	Category   string
	OnlySilver bool
	Query      string
}

func newProductListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List catalog products, optionally filtered",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", catalog.AllCategories, "category filter (\"all\" bypasses)")
	cmd.Flags().BoolVar(&opts.OnlySilver, "silver", false, "silver products only")
	cmd.Flags().StringVar(&opts.Query, "query", "", "free-text search across name/description/category/collection")

	return cmd
}

func runProductList(opts *ProductListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := eng.Snapshot(cmd.Context())
	if err != nil {
		return rejectionExit(formatter, err)
	}

	products := catalog.Filter(doc.Products, catalog.FilterOptions{
		Category:   opts.Category,
		OnlySilver: opts.OnlySilver,
		Query:      opts.Query,
	})

	// SKU/vendor are admin-visible only.
	if !doc.AdminSession {
		for i := range products {
			products[i] = products[i].PublicView()
		}
	}

	if opts.Format == "json" {
		return formatter.Success(products)
	}
	for _, p := range products {
		line := fmt.Sprintf("%-8s %-28s %10s  %s", p.ID, p.Name, formatMoney(p.Price), p.Category)
		if p.SKU != "" {
			line += "  [" + p.SKU + "]"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d product(s)\n", len(products))
	return nil
}

// ProductAddOptions holds flags for product add.
type ProductAddOptions struct {
	*RootOptions
	Product schema.Product
}

func newProductAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert or replace a catalog product",
		Long: `Insert a product, or replace the existing one with the same id.

Example:
  storefront product add --id sf-010 --name "Rope Chain" --price 980 --category necklaces --silver`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductAdd(opts, cmd)
		},
	}

	p := &opts.Product
	cmd.Flags().StringVar(&p.ID, "id", "", "product id (generated when empty)")
	cmd.Flags().StringVar(&p.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&p.Status, "status", "", "status label")
	cmd.Flags().StringVar(&p.Category, "category", "", "category")
	cmd.Flags().StringVar(&p.Collection, "collection", "", "merchandising collection")
	cmd.Flags().BoolVar(&p.IsSilver, "silver", false, "mark as silver")
	cmd.Flags().Int64Var(&p.Price, "price", 0, "price in currency units")
	cmd.Flags().StringSliceVar(&p.Variants, "variant", nil, "variant name (repeatable)")
	cmd.Flags().StringSliceVar(&p.Images, "image", nil, "image URL (repeatable)")
	cmd.Flags().StringVar(&p.Description, "description", "", "free-text description")
	cmd.Flags().StringVar(&p.SKU, "sku", "", "internal SKU")
	cmd.Flags().StringVar(&p.Vendor, "vendor", "", "internal vendor")

	return cmd
}

func runProductAdd(opts *ProductAddOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	mgr := catalog.NewManager(eng)
	created, _, err := mgr.Upsert(cmd.Context(), opts.Product)
	if err != nil {
		return rejectionExit(formatter, err)
	}

	return formatter.SuccessText(created, "saved product %s (%s)", created.ID, created.Name)
}

func newProductRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Delete a catalog product",
		Long: `Delete a product from the catalog.

Cart lines and historical orders referencing the id are left in place;
they become stale references, which pricing and checkout tolerate.`,
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

			mgr := catalog.NewManager(eng)
			if _, err := mgr.Delete(cmd.Context(), args[0]); err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(map[string]string{"deleted": args[0]}, "deleted product %s", args[0])
		},
	}
	return cmd
}
