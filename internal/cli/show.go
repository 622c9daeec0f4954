package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/schema"
)

// DocumentSummary is the JSON payload for `show`.
type DocumentSummary struct {
	Products     int    `json:"products"`
	CartLines    int    `json:"cartLines"`
	Members      int    `json:"members"`
	Orders       int    `json:"orders"`
	LoggedIn     string `json:"loggedIn,omitempty"`
	AdminSession bool   `json:"adminSession"`
	Announcement string `json:"announcement,omitempty"`
}

func summary(doc *schema.Document) DocumentSummary {
	return DocumentSummary{
		Products:     len(doc.Products),
		CartLines:    len(doc.Cart),
		Members:      len(doc.Members),
		Orders:       len(doc.Orders),
		LoggedIn:     doc.CurrentMemberID,
		AdminSession: doc.AdminSession,
		Announcement: doc.Settings.Announcement,
	}
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Full bool
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current document",
		Long: `Print the latest persisted document snapshot.

By default prints a summary; --full dumps the entire document as JSON.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Full, "full", false, "dump the full document as JSON")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
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

	if opts.Full {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	s := summary(doc)
	return formatter.SuccessText(s,
		"products: %d\ncart lines: %d\nmembers: %d\norders: %d\nlogged in: %s\nadmin session: %v",
		s.Products, s.CartLines, s.Members, s.Orders, orDash(s.LoggedIn), s.AdminSession)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatMoney renders an integer amount in the store's currency unit.
func formatMoney(amount int64) string {
	return fmt.Sprintf("NT$%d", amount)
}
