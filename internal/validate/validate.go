// Package validate turns raw form input (CLI flags, TUI fields) into backend
// payloads, rejecting values the backend would refuse.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ticketdesk/internal/model"
)

type FieldError struct {
	Field string
	Msg   string
}

func (e FieldError) Error() string { return e.Field + ": " + e.Msg }

// Errors collects every problem in one input.
type Errors []FieldError

func (es Errors) Error() string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (es *Errors) add(field, msg string) {
	*es = append(*es, FieldError{Field: field, Msg: msg})
}

func (es Errors) err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

var ErrInvalidID = errors.New("enter a positive integer ID")

// ID parses a positive integer record id.
func ID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

// Comment checks the argument of the comment functions.
func Comment(s string) (string, error) {
	if blank(s) {
		return "", FieldError{Field: "comment", Msg: "must not be empty"}
	}
	return s, nil
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func optionalRef(es *Errors, field, s string) *int64 {
	if blank(s) {
		return nil
	}
	id, err := ID(s)
	if err != nil {
		es.add(field, err.Error())
		return nil
	}
	return &id
}

func enum[T ~string](es *Errors, field, s string, allowed []T) (T, bool) {
	v := T(strings.ToUpper(strings.TrimSpace(s)))
	if !model.OneOf(v, allowed) {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		es.add(field, fmt.Sprintf("must be one of %s", strings.Join(names, ", ")))
		return "", false
	}
	return v, true
}

type TicketInput struct {
	Name     string
	Price    string
	Type     string
	Number   string
	Discount string
	Comment  string
	CoordX   string
	CoordY   string
	PersonID string
	EventID  string
	VenueID  string
}

// Ticket validates a create/update form.
func Ticket(in TicketInput) (model.Ticket, error) {
	var es Errors
	t := model.Ticket{Name: strings.TrimSpace(in.Name)}

	if t.Name == "" {
		es.add("name", "required")
	}
	if p, ok := parseFloat(in.Price); !ok || p <= 0 {
		es.add("price", "must be > 0")
	} else {
		t.Price = p
	}
	if blank(in.Type) {
		es.add("type", "required")
	} else if tt, ok := enum(&es, "type", in.Type, model.TicketTypes); ok {
		t.Type = tt
	}
	if n, ok := parseInt(in.Number); !ok || n <= 0 {
		es.add("number", "must be an integer > 0")
	} else {
		t.Number = n
	}
	if !blank(in.Discount) {
		d, ok := parseFloat(in.Discount)
		if !ok || d <= 0 || d > 100 {
			es.add("discount", "must be in (0, 100]")
		} else {
			t.Discount = &d
		}
	}
	if c := strings.TrimSpace(in.Comment); c != "" {
		t.Comment = &c
	}

	if blank(in.CoordX) || blank(in.CoordY) {
		es.add("coordinates", "x and y are required")
	} else {
		if x, ok := parseInt(in.CoordX); ok {
			t.Coordinates.X = x
		} else {
			es.add("coordinates.x", "must be an integer")
		}
		if y, ok := parseFloat(in.CoordY); ok {
			t.Coordinates.Y = y
		} else {
			es.add("coordinates.y", "must be a number")
		}
	}

	if id := optionalRef(&es, "person", in.PersonID); id != nil {
		t.Person = &model.Person{ID: id}
	}
	if id := optionalRef(&es, "event", in.EventID); id != nil {
		t.Event = &model.Event{ID: id}
	}
	if id := optionalRef(&es, "venue", in.VenueID); id != nil {
		t.Venue = &model.Venue{ID: id}
	}
	return t, es.err()
}

type PersonInput struct {
	PassportID  string
	Weight      string
	Nationality string
	HairColor   string
	EyeColor    string
	LocX        string
	LocY        string
	LocZ        string
}

func Person(in PersonInput) (model.Person, error) {
	var es Errors
	p := model.Person{PassportID: strings.TrimSpace(in.PassportID)}

	if p.PassportID == "" {
		es.add("passportID", "required")
	}
	if w, ok := parseFloat(in.Weight); !ok || w <= 0 {
		es.add("weight", "must be > 0")
	} else {
		p.Weight = w
	}
	if blank(in.Nationality) {
		es.add("nationality", "required")
	} else if c, ok := enum(&es, "nationality", in.Nationality, model.Countries); ok {
		p.Nationality = c
	}
	if blank(in.HairColor) {
		es.add("hairColor", "required")
	} else if c, ok := enum(&es, "hairColor", in.HairColor, model.Colors); ok {
		p.HairColor = c
	}
	if !blank(in.EyeColor) {
		if c, ok := enum(&es, "eyeColor", in.EyeColor, model.Colors); ok {
			p.EyeColor = &c
		}
	}

	if blank(in.LocX) || blank(in.LocZ) {
		es.add("location", "x and z are required")
	} else {
		loc := &model.Location{}
		if x, ok := parseInt(in.LocX); ok {
			loc.X = x
		} else {
			es.add("location.x", "must be an integer")
		}
		if !blank(in.LocY) {
			if y, ok := parseFloat(in.LocY); ok {
				loc.Y = y
			} else {
				es.add("location.y", "must be a number")
			}
		}
		if z, ok := parseFloat(in.LocZ); ok {
			loc.Z = z
		} else {
			es.add("location.z", "must be a number")
		}
		p.Location = loc
	}
	return p, es.err()
}

type EventInput struct {
	Name         string
	TicketsCount string
	EventType    string
}

func Event(in EventInput) (model.Event, error) {
	var es Errors
	e := model.Event{Name: strings.TrimSpace(in.Name)}
	if e.Name == "" {
		es.add("name", "required")
	}
	if n, ok := parseInt(in.TicketsCount); !ok || n <= 0 {
		es.add("ticketsCount", "must be an integer > 0")
	} else {
		e.TicketsCount = n
	}
	if !blank(in.EventType) {
		if t, ok := enum(&es, "eventType", in.EventType, model.EventTypes); ok {
			e.EventType = &t
		}
	}
	return e, es.err()
}

type VenueInput struct {
	Name     string
	Capacity string
	Type     string
}

func Venue(in VenueInput) (model.Venue, error) {
	var es Errors
	v := model.Venue{Name: strings.TrimSpace(in.Name)}
	if v.Name == "" {
		es.add("name", "required")
	}
	if !blank(in.Capacity) {
		if n, ok := parseInt(in.Capacity); !ok || n <= 0 {
			es.add("capacity", "must be an integer > 0")
		} else {
			v.Capacity = &n
		}
	}
	if !blank(in.Type) {
		if t, ok := enum(&es, "type", in.Type, model.VenueTypes); ok {
			v.Type = &t
		}
	}
	return v, es.err()
}

type SellInput struct {
	TicketID string
	PersonID string
	Amount   string
}

func Sell(in SellInput) (model.SellRequest, error) {
	var es Errors
	var req model.SellRequest
	if id, err := ID(in.TicketID); err != nil {
		es.add("ticketId", err.Error())
	} else {
		req.TicketID = id
	}
	if id, err := ID(in.PersonID); err != nil {
		es.add("personId", err.Error())
	} else {
		req.PersonID = id
	}
	if a, ok := parseFloat(in.Amount); !ok || a <= 0 {
		es.add("amount", "must be > 0")
	} else {
		req.Amount = a
	}
	return req, es.err()
}
