package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/schema"
	"github.com/quayside/storefront/internal/seed"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	ProductsFile string
	SettingsFile string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Bootstrap the document from seed data",
		Long: `Initialize the storefront document from seed payloads.

Seeding happens exactly once: if a document already exists it is left
untouched. Without --products/--settings the embedded default seed data
is used.

Example:
  storefront init --db shop.db
  storefront init --db shop.db --products seed/products.json --settings seed/settings.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ProductsFile, "products", "", "path to seed product list (JSON)")
	cmd.Flags().StringVar(&opts.SettingsFile, "settings", "", "path to seed settings object (JSON)")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	products, settings, err := loadSeed(opts)
	if err != nil {
		_ = formatter.Error("SEED_ERROR", err.Error())
		return WrapExitError(ExitCommandError, "failed to load seed data", err)
	}

	eng, cleanup, err := openEngine(opts.RootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := eng.Bootstrap(cmd.Context(), products, settings)
	if err != nil {
		_ = formatter.Error("STORE_ERROR", err.Error())
		return WrapExitError(ExitCommandError, "bootstrap failed", err)
	}

	slog.Info("document ready", "db", opts.Database, "products", len(doc.Products))
	return formatter.SuccessText(summary(doc),
		"initialized %s: %d products, %d members, %d orders",
		opts.Database, len(doc.Products), len(doc.Members), len(doc.Orders))
}

// loadSeed resolves the seed payloads: files when given, embedded
// defaults otherwise.
func loadSeed(opts *InitOptions) ([]schema.Product, schema.Settings, error) {
	if opts.ProductsFile == "" && opts.SettingsFile == "" {
		return seed.Default()
	}

	var (
		products []schema.Product
		settings schema.Settings
		err      error
	)
	if opts.ProductsFile != "" {
		products, err = seed.ProductsFile(opts.ProductsFile)
		if err != nil {
			return nil, schema.Settings{}, err
		}
	}
	if opts.SettingsFile != "" {
		settings, err = seed.SettingsFile(opts.SettingsFile)
		if err != nil {
			return nil, schema.Settings{}, err
		}
	}
	return products, settings, nil
}
