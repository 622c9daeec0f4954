package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/member"
)

// NewMemberCommand creates the member command group.
func NewMemberCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Membership operations",
	}

	cmd.AddCommand(newMemberRegisterCommand(rootOpts))
	cmd.AddCommand(newMemberLoginCommand(rootOpts))
	cmd.AddCommand(newMemberLogoutCommand(rootOpts))
	cmd.AddCommand(newMemberUpdateCommand(rootOpts))
	cmd.AddCommand(newMemberOrdersCommand(rootOpts))

	return cmd
}

// RegisterOptions holds flags for member register.
type RegisterOptions struct {
	*RootOptions
	Reg member.Registration
}

func newMemberRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a member and open a session",
		Long: `Register a new member keyed by phone.

Phone and birth date are immutable after registration. Registration
also logs the member in.`,
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

			created, _, err := member.NewManager(eng).Register(cmd.Context(), opts.Reg)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(created, "registered %s (%s), session open", created.Name, created.Phone)
		},
	}

	r := &opts.Reg
	cmd.Flags().StringVar(&r.Phone, "phone", "", "phone number, the membership key (required)")
	cmd.Flags().StringVar(&r.Password, "password", "", "password (required)")
	cmd.Flags().StringVar(&r.Name, "name", "", "display name (required)")
	cmd.Flags().IntVar(&r.BirthMonth, "birth-month", 0, "birth month 1-12")
	cmd.Flags().IntVar(&r.BirthDay, "birth-day", 0, "birth day 1-31")
	cmd.Flags().StringVar(&r.Address, "address", "", "delivery address")

	return cmd
}

func newMemberLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var phone, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session",
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

			logged, _, err := member.NewManager(eng).Login(cmd.Context(), phone, password)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(logged, "welcome back, %s", logged.Name)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newMemberLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the session (cart is kept)",
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

			doc, err := member.NewManager(eng).Logout(cmd.Context())
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(summary(doc), "logged out; cart keeps %d line(s)", len(doc.Cart))
		},
	}
}

// UpdateOptions holds flags for member update.
type UpdateOptions struct {
	*RootOptions
	Phone   string
	Name    string
	Address string
}

func newMemberUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a member's mutable profile fields",
		Long: `Update name and/or address. Only supplied flags change anything;
phone and birth date cannot be changed.`,
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

			var upd member.ProfileUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &opts.Name
			}
			if cmd.Flags().Changed("address") {
				upd.Address = &opts.Address
			}

			doc, err := member.NewManager(eng).UpdateProfile(cmd.Context(), opts.Phone, upd)
			if err != nil {
				return rejectionExit(formatter, err)
			}
			return formatter.SuccessText(doc.FindMember(opts.Phone), "profile updated for %s", opts.Phone)
		},
	}

	cmd.Flags().StringVar(&opts.Phone, "phone", "", "membership key of the profile to update")
	cmd.Flags().StringVar(&opts.Name, "name", "", "new display name")
	cmd.Flags().StringVar(&opts.Address, "address", "", "new delivery address")

	return cmd
}

func newMemberOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders <phone>",
		Short: "Show a member's order history, newest first",
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

			orders, err := member.NewManager(eng).Orders(cmd.Context(), args[0])
			if err != nil {
				return rejectionExit(formatter, err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(orders)
			}
			out := cmd.OutOrStdout()
			for _, o := range orders {
				fmt.Fprintf(out, "%s  %s  %s  %d line(s)\n",
					o.ID, o.CreatedAt.Format("2006-01-02"), formatMoney(o.Totals.Total), len(o.Lines))
			}
			fmt.Fprintf(out, "%d order(s)\n", len(orders))
			return nil
		},
	}
}
