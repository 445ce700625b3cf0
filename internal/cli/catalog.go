package cli

import (
	"ticketdesk/internal/model"
	"ticketdesk/internal/validate"

	"github.com/spf13/cobra"
)

func newPersonsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "persons",
		Aliases: []string{"person"},
		Short:   "Person commands",
	}
	cmd.AddCommand(newListCmd(app, model.CollectionPersons))
	cmd.AddCommand(newPersonsCreateCmd(app))
	cmd.AddCommand(newPublishCmd(app, model.CollectionPersons))
	return cmd
}

func newPersonsCreateCmd(app *App) *cobra.Command {
	var in validate.PersonInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := validate.Person(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.CreatePerson(ctx, p)
			if err != nil {
				return writeErr(cmd, backendError(err, "person", ""))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&in.PassportID, "passport", "", "Passport id (required)")
	cmd.Flags().StringVar(&in.Weight, "weight", "", "Weight, > 0 (required)")
	cmd.Flags().StringVar(&in.Nationality, "nationality", "", "GERMANY|INDIA|THAILAND|SOUTH_KOREA|JAPAN (required)")
	cmd.Flags().StringVar(&in.HairColor, "hair", "", "Hair color: GREEN|RED|ORANGE|WHITE|BROWN (required)")
	cmd.Flags().StringVar(&in.EyeColor, "eye", "", "Eye color: GREEN|RED|ORANGE|WHITE|BROWN")
	cmd.Flags().StringVar(&in.LocX, "x", "", "Location x, integer (required)")
	cmd.Flags().StringVar(&in.LocY, "y", "", "Location y (default 0)")
	cmd.Flags().StringVar(&in.LocZ, "z", "", "Location z (required)")
	return cmd
}

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Event commands",
	}
	cmd.AddCommand(newListCmd(app, model.CollectionEvents))
	cmd.AddCommand(newEventsCreateCmd(app))
	cmd.AddCommand(newPublishCmd(app, model.CollectionEvents))
	return cmd
}

func newEventsCreateCmd(app *App) *cobra.Command {
	var in validate.EventInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := validate.Event(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.CreateEvent(ctx, e)
			if err != nil {
				return writeErr(cmd, backendError(err, "event", ""))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Event name (required)")
	cmd.Flags().StringVar(&in.TicketsCount, "tickets-count", "", "Tickets count, integer > 0 (required)")
	cmd.Flags().StringVar(&in.EventType, "type", "", "Event type: CONCERT|FOOTBALL|BASEBALL|BASKETBALL|OPERA")
	return cmd
}

func newVenuesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "venues",
		Aliases: []string{"venue"},
		Short:   "Venue commands",
	}
	cmd.AddCommand(newListCmd(app, model.CollectionVenues))
	cmd.AddCommand(newVenuesCreateCmd(app))
	cmd.AddCommand(newPublishCmd(app, model.CollectionVenues))
	return cmd
}

func newVenuesCreateCmd(app *App) *cobra.Command {
	var in validate.VenueInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := validate.Venue(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			c, err := app.client(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			rec, err := c.CreateVenue(ctx, v)
			if err != nil {
				return writeErr(cmd, backendError(err, "venue", ""))
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Venue name (required)")
	cmd.Flags().StringVar(&in.Capacity, "capacity", "", "Capacity, integer > 0")
	cmd.Flags().StringVar(&in.Type, "type", "", "Venue type: LOFT|OPEN_AREA|STADIUM")
	return cmd
}
