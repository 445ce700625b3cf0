package cli

import (
	"errors"
	"strconv"

	"ticketdesk/internal/backend"
	"ticketdesk/internal/validate"

	"github.com/spf13/cobra"
)

func newFunctionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "functions",
		Aliases: []string{"fn"},
		Short:   "Bespoke backend operations on tickets",
	}
	cmd.AddCommand(newDeleteByCommentCmd(app))
	cmd.AddCommand(newMinEventCmd(app))
	cmd.AddCommand(newCountCommentLessCmd(app))
	cmd.AddCommand(newSellCmd(app))
	cmd.AddCommand(newCloneVIPCmd(app))
	return cmd
}

func newDeleteByCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-by-comment <comment>",
		Short: "Delete every ticket whose comment equals <comment>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := validate.Comment(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteByComment(ctx, comment); err != nil {
				return writeErr(cmd, backendError(err, "", ""))
			}
			return writeOut(cmd, app, map[string]any{
				"data":   map[string]any{"comment": comment, "deleted": true},
				"_hints": []string{"ticketdesk tickets list --query " + strconv.Quote(comment)},
			})
		},
	}
}

func newMinEventCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "min-event",
		Short: "Show the ticket with the minimal event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.MinEventTicket(ctx)
			if errors.Is(err, backend.ErrNotFound) {
				return writeErr(cmd, errors.New("no ticket has an event"))
			}
			if err != nil {
				return writeErr(cmd, backendError(err, "", ""))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
}

func newCountCommentLessCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count-comment-less <comment>",
		Short: "Count tickets whose comment sorts before <comment>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := validate.Comment(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := c.CountCommentLess(ctx, comment)
			if err != nil {
				return writeErr(cmd, backendError(err, "", ""))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"comment": comment, "count": n}})
		},
	}
}

func newSellCmd(app *App) *cobra.Command {
	var in validate.SellInput

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell a ticket to a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := validate.Sell(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.SellTicket(ctx, req); err != nil {
				return writeErr(cmd, backendError(err, "ticket", in.TicketID))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"ticketId": req.TicketID,
					"personId": req.PersonID,
					"amount":   req.Amount,
					"sold":     true,
				},
				"_hints": []string{"ticketdesk tickets show " + strconv.FormatInt(req.TicketID, 10)},
			})
		},
	}

	cmd.Flags().StringVar(&in.TicketID, "ticket", "", "Ticket id (required)")
	cmd.Flags().StringVar(&in.PersonID, "person", "", "Buyer person id (required)")
	cmd.Flags().StringVar(&in.Amount, "amount", "", "Amount paid, > 0 (required)")
	return cmd
}

func newCloneVIPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clone-vip <ticket-id>",
		Short: "Copy a ticket as a VIP ticket",
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
			rec, err := c.CloneVIP(ctx, id)
			if err != nil {
				return writeErr(cmd, backendError(err, "ticket", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}
}
