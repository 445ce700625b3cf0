package model

import "strings"

type TicketType string

const (
	TicketVIP       TicketType = "VIP"
	TicketUsual     TicketType = "USUAL"
	TicketBudgetary TicketType = "BUDGETARY"
	TicketCheap     TicketType = "CHEAP"
)

var TicketTypes = []TicketType{TicketVIP, TicketUsual, TicketBudgetary, TicketCheap}

type Color string

const (
	ColorGreen  Color = "GREEN"
	ColorRed    Color = "RED"
	ColorOrange Color = "ORANGE"
	ColorWhite  Color = "WHITE"
	ColorBrown  Color = "BROWN"
)

var Colors = []Color{ColorGreen, ColorRed, ColorOrange, ColorWhite, ColorBrown}

type Country string

const (
	CountryGermany    Country = "GERMANY"
	CountryIndia      Country = "INDIA"
	CountryThailand   Country = "THAILAND"
	CountrySouthKorea Country = "SOUTH_KOREA"
	CountryJapan      Country = "JAPAN"
)

var Countries = []Country{CountryGermany, CountryIndia, CountryThailand, CountrySouthKorea, CountryJapan}

type EventType string

const (
	EventConcert    EventType = "CONCERT"
	EventFootball   EventType = "FOOTBALL"
	EventBaseball   EventType = "BASEBALL"
	EventBasketball EventType = "BASKETBALL"
	EventOpera      EventType = "OPERA"
)

var EventTypes = []EventType{EventConcert, EventFootball, EventBaseball, EventBasketball, EventOpera}

type VenueType string

const (
	VenueLoft     VenueType = "LOFT"
	VenueOpenArea VenueType = "OPEN_AREA"
	VenueStadium  VenueType = "STADIUM"
)

var VenueTypes = []VenueType{VenueLoft, VenueOpenArea, VenueStadium}

type Coordinates struct {
	X int     `json:"x"`
	Y float64 `json:"y"`
}

type Location struct {
	ID *int64  `json:"id,omitempty"`
	X  int     `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

type Person struct {
	ID          *int64    `json:"id,omitempty"`
	PassportID  string    `json:"passportID,omitempty"`
	Weight      float64   `json:"weight,omitempty"`
	Nationality Country   `json:"nationality,omitempty"`
	HairColor   Color     `json:"hairColor,omitempty"`
	EyeColor    *Color    `json:"eyeColor,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

type Event struct {
	ID           *int64     `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	TicketsCount int        `json:"ticketsCount,omitempty"`
	EventType    *EventType `json:"eventType,omitempty"`
	Date         string     `json:"date,omitempty"`
}

type Venue struct {
	ID       *int64     `json:"id,omitempty"`
	Name     string     `json:"name,omitempty"`
	Capacity *int       `json:"capacity,omitempty"`
	Type     *VenueType `json:"type,omitempty"`
}

// Ticket is the create/update payload and the typed view of a fetched
// ticket. Person, Event and Venue are references; on writes only their ID
// is sent.
type Ticket struct {
	ID          *int64      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Price       float64     `json:"price"`
	Type        TicketType  `json:"type"`
	Number      int         `json:"number"`
	Discount    *float64    `json:"discount,omitempty"`
	Comment     *string     `json:"comment,omitempty"`
	Person      *Person     `json:"person,omitempty"`
	Event       *Event      `json:"event,omitempty"`
	Venue       *Venue      `json:"venue,omitempty"`
}

// SellRequest is the body of the sell-ticket operation.
type SellRequest struct {
	TicketID int64   `json:"ticketId"`
	PersonID int64   `json:"personId"`
	Amount   float64 `json:"amount"`
}

// CloneRequest is the body of the clone-VIP operation.
type CloneRequest struct {
	TicketID int64 `json:"ticketId"`
}

// Ref builds a reference carrying only an id.
func Ref(id int64) *int64 { return &id }

// Collection names a browsable record list on the backend.
type Collection string

const (
	CollectionTickets Collection = "tickets"
	CollectionPersons Collection = "persons"
	CollectionEvents  Collection = "events"
	CollectionVenues  Collection = "venues"
)

var Collections = []Collection{CollectionTickets, CollectionPersons, CollectionEvents, CollectionVenues}

// ParseCollection accepts the plural or singular name.
func ParseCollection(s string) (Collection, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Collections {
		if s == string(c) || s+"s" == string(c) {
			return c, true
		}
	}
	return "", false
}

// Singular is the display name of one record ("ticket").
func (c Collection) Singular() string {
	return strings.TrimSuffix(string(c), "s")
}

func OneOf[T ~string](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
