// Package schema holds the grid column layouts for each backend collection.
package schema

import (
	"strconv"

	"ticketdesk/internal/grid"
	"ticketdesk/internal/model"
)

func number(key, title, path string) grid.Column {
	acc := grid.NumberField(path)
	return grid.Column{
		Key:      key,
		Title:    title,
		Accessor: acc,
		Render:   renderValue(acc),
		Sortable: true,
	}
}

func text(key, title, path string) grid.Column {
	acc := grid.TextField(path)
	return grid.Column{
		Key:      key,
		Title:    title,
		Accessor: acc,
		Render:   renderValue(acc),
		Sortable: true,
	}
}

func renderValue(acc grid.Accessor) grid.Renderer {
	return func(r grid.Record) string { return acc(r).String() }
}

// renderMoney shows two decimals for real numbers and falls back to the
// coerced value otherwise.
func renderMoney(path string) grid.Renderer {
	acc := grid.NumberField(path)
	return func(r grid.Record) string {
		if f, ok := grid.Lookup(r, path).(float64); ok {
			return strconv.FormatFloat(f, 'f', 2, 64)
		}
		return acc(r).String()
	}
}

// Tickets mirrors the full ticket table, nested references included.
func Tickets() grid.Schema {
	price := number("price", "Price", "price")
	price.Render = renderMoney("price")

	return grid.Schema{
		number("id", "ID", "id"),
		text("name", "Name", "name"),
		price,
		text("type", "Type", "type"),
		number("number", "Qty", "number"),
		number("discount", "Discount", "discount"),

		number("coord_x", "Coord X", "coordinates.x"),
		number("coord_y", "Coord Y", "coordinates.y"),

		number("person_id", "Person ID", "person.id"),
		text("person_passport", "PassportID", "person.passportID"),
		number("person_weight", "Weight", "person.weight"),
		text("person_nat", "Nationality", "person.nationality"),
		text("person_hair", "HairColor", "person.hairColor"),
		text("person_eye", "EyeColor", "person.eyeColor"),
		number("person_loc_x", "Loc X", "person.location.x"),
		number("person_loc_y", "Loc Y", "person.location.y"),
		number("person_loc_z", "Loc Z", "person.location.z"),

		number("event_id", "Event ID", "event.id"),
		text("event_name", "Event name", "event.name"),
		number("event_count", "Tickets count", "event.ticketsCount"),
		text("event_type", "Event type", "event.eventType"),

		number("venue_id", "Venue ID", "venue.id"),
		text("venue_name", "Venue name", "venue.name"),
		number("venue_capacity", "Capacity", "venue.capacity"),
		text("venue_type", "Venue type", "venue.type"),

		text("comment", "Comment", "comment"),
	}
}

func Persons() grid.Schema {
	return grid.Schema{
		number("id", "ID", "id"),
		text("passportID", "PassportID", "passportID"),
		number("weight", "Weight", "weight"),
		text("nationality", "Nationality", "nationality"),
		text("hairColor", "HairColor", "hairColor"),
		text("eyeColor", "EyeColor", "eyeColor"),
		number("loc_x", "Loc X", "location.x"),
		number("loc_y", "Loc Y", "location.y"),
		number("loc_z", "Loc Z", "location.z"),
	}
}

func Events() grid.Schema {
	return grid.Schema{
		number("id", "ID", "id"),
		text("name", "Name", "name"),
		number("ticketsCount", "Tickets count", "ticketsCount"),
		text("eventType", "Event type", "eventType"),
		{
			Key:      "name_id",
			Title:    "Name, ID",
			Accessor: grid.Composite(grid.TextField("name"), grid.NumberField("id")),
			Render: func(r grid.Record) string {
				return grid.TextField("name")(r).String() + " #" + grid.NumberField("id")(r).String()
			},
			Sortable: true,
		},
	}
}

func Venues() grid.Schema {
	return grid.Schema{
		number("id", "ID", "id"),
		text("name", "Name", "name"),
		number("capacity", "Capacity", "capacity"),
		text("type", "Venue type", "type"),
	}
}

// For returns the schema of a collection.
func For(c model.Collection) grid.Schema {
	switch c {
	case model.CollectionPersons:
		return Persons()
	case model.CollectionEvents:
		return Events()
	case model.CollectionVenues:
		return Venues()
	default:
		return Tickets()
	}
}
