package cli

import (
	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/schema"
)

// SettingsOptions holds flags for settings set.
type SettingsOptions struct {
	*RootOptions
	ShippingFee      int64
	FreeShippingOver int64
	FirstRate        float64
	BirthdayRate     float64
	Announcement     string
}

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Pricing and content settings",
	}

	cmd.AddCommand(newSettingsSetCommand(rootOpts))

	return cmd
}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings values",
		Long: `Change one or more settings values. Only supplied flags change
anything; everything else keeps its current value.

Example:
  storefront settings set --free-shipping-over 1500 --birthday-rate 0.2`,
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

			doc, err := eng.Transact(cmd.Context(), func(doc *schema.Document) error {
				s := &doc.Settings
				if cmd.Flags().Changed("shipping-fee") {
					s.ShippingFee = opts.ShippingFee
				}
				if cmd.Flags().Changed("free-shipping-over") {
					s.FreeShippingOver = opts.FreeShippingOver
				}
				if cmd.Flags().Changed("first-rate") {
					s.FirstPurchaseDiscountRate = opts.FirstRate
				}
				if cmd.Flags().Changed("birthday-rate") {
					s.BirthdayDiscountRate = opts.BirthdayRate
				}
				if cmd.Flags().Changed("announcement") {
					s.Announcement = opts.Announcement
				}
				return nil
			})
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(doc.Settings, "settings saved")
		},
	}

	cmd.Flags().Int64Var(&opts.ShippingFee, "shipping-fee", 0, "flat shipping fee")
	cmd.Flags().Int64Var(&opts.FreeShippingOver, "free-shipping-over", 0, "free-shipping threshold (0 disables)")
	cmd.Flags().Float64Var(&opts.FirstRate, "first-rate", 0, "first purchase discount rate")
	cmd.Flags().Float64Var(&opts.BirthdayRate, "birthday-rate", 0, "birthday month discount rate")
	cmd.Flags().StringVar(&opts.Announcement, "announcement", "", "storefront announcement text")

	return cmd
}
