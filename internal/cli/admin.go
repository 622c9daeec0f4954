package cli

import (
	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/schema"
)

// NewAdminCommand creates the admin command group.
//
// The credential gate that decides who may run these lives outside this
// layer; the flag itself is document state and travels through the
// gateway like every other mutation.
func NewAdminCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Toggle the admin session flag",
	}

	cmd.AddCommand(newAdminSetCommand(rootOpts, "on", true))
	cmd.AddCommand(newAdminSetCommand(rootOpts, "off", false))

	return cmd
}

func newAdminSetCommand(rootOpts *RootOptions, use string, value bool) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         "Set the admin session flag to " + use,
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
				doc.AdminSession = value
				return nil
			})
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(summary(doc), "admin session: %v", doc.AdminSession)
		},
	}
}
