package cli

import (
	"fmt"
	"strconv"

	"ticketdesk/internal/model"
	"ticketdesk/internal/publish"
	"ticketdesk/internal/validate"

	"github.com/spf13/cobra"
)

func newTicketsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket"},
		Short:   "Ticket commands",
	}
	cmd.AddCommand(newListCmd(app, model.CollectionTickets))
	cmd.AddCommand(newTicketsShowCmd(app))
	cmd.AddCommand(newTicketsCreateCmd(app))
	cmd.AddCommand(newTicketsUpdateCmd(app))
	cmd.AddCommand(newTicketsDeleteCmd(app))
	cmd.AddCommand(newPublishCmd(app, model.CollectionTickets))
	return cmd
}

func newTicketsShowCmd(app *App) *cobra.Command {
	var markdown bool
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validate.ID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.Ticket(ctx, id)
			if err != nil {
				return writeErr(cmd, backendError(err, "ticket", args[0]))
			}

			if markdown || raw {
				md, err := publish.RenderTicketMarkdown(rec)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !raw {
					md = publish.RenderTerminal(md, width) + "\n"
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data": rec,
				"_hints": []string{
					"ticketdesk tickets show " + strconv.FormatInt(id, 10) + " --markdown",
					"ticketdesk tickets update " + strconv.FormatInt(id, 10) + " --name ...",
				},
			})
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render a markdown card for the terminal")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown card source (no rendering, no JSON envelope)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --markdown")
	return cmd
}

// ticketFlags binds the ticket form to flags shared by create and update.
func ticketFlags(cmd *cobra.Command, in *validate.TicketInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Ticket name (required)")
	cmd.Flags().StringVar(&in.Price, "price", "", "Price, > 0 (required)")
	cmd.Flags().StringVar(&in.Type, "type", "", "Ticket type: VIP|USUAL|BUDGETARY|CHEAP (required)")
	cmd.Flags().StringVar(&in.Number, "number", "", "Number, integer > 0 (required)")
	cmd.Flags().StringVar(&in.Discount, "discount", "", "Discount percent in (0, 100]")
	cmd.Flags().StringVar(&in.Comment, "comment", "", "Comment")
	cmd.Flags().StringVar(&in.CoordX, "x", "", "Coordinate x, integer (required)")
	cmd.Flags().StringVar(&in.CoordY, "y", "", "Coordinate y, number (required)")
	cmd.Flags().StringVar(&in.PersonID, "person", "", "Person id")
	cmd.Flags().StringVar(&in.EventID, "event", "", "Event id")
	cmd.Flags().StringVar(&in.VenueID, "venue", "", "Venue id")
}

func newTicketsCreateCmd(app *App) *cobra.Command {
	var in validate.TicketInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := validate.Ticket(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.CreateTicket(ctx, t)
			if err != nil {
				return writeErr(cmd, backendError(err, "ticket", ""))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
	ticketFlags(cmd, &in)
	return cmd
}

func newTicketsUpdateCmd(app *App) *cobra.Command {
	var in validate.TicketInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a ticket's fields",
		Long:  "Replace a ticket's fields. The full form is validated as on create.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validate.ID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := validate.Ticket(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.UpdateTicket(ctx, id, t)
			if err != nil {
				return writeErr(cmd, backendError(err, "ticket", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
	ticketFlags(cmd, &in)
	return cmd
}

func newTicketsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validate.ID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteTicket(ctx, id); err != nil {
				return writeErr(cmd, backendError(err, "ticket", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
	return cmd
}
