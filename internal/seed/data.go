package seed

import "github.com/iliyamo/tournament-tickets/internal/model"

// Teams of the CHAN 2025 group stage, keyed by FIFA code.
var Teams = []model.Team{
	{Name: "Kenya", Code: "KEN"},
	{Name: "Morocco", Code: "MAR"},
	{Name: "Angola", Code: "ANG"},
	{Name: "DR Congo", Code: "DRC"},
	{Name: "Zambia", Code: "ZAM"},
	{Name: "Tanzania", Code: "TAN"},
	{Name: "Madagascar", Code: "MAD"},
	{Name: "Mauritania", Code: "MTN"},
	{Name: "Burkina Faso", Code: "BFA"},
	{Name: "Central African Republic", Code: "CTA"},
	{Name: "Uganda", Code: "UGA"},
	{Name: "Niger", Code: "NIG"},
	{Name: "Guinea", Code: "GUI"},
	{Name: "South Africa", Code: "RSA"},
	{Name: "Algeria", Code: "ALG"},
	{Name: "Senegal", Code: "SEN"},
	{Name: "Congo", Code: "CGO"},
	{Name: "Sudan", Code: "SDN"},
	{Name: "Nigeria", Code: "NGA"},
}

const (
	kasarani = "Moi International Sports Centre Kasarani"
	nyayo    = "Nyayo National Stadium"
	mkapa    = "Benjamin Mkapa Stadium"
	amaan    = "Amaan Stadium"
	mandela  = "Mandela National Stadium"
)

var Venues = []model.Venue{
	{Name: kasarani, City: "Nairobi", Country: "Kenya", Capacity: 60000},
	{Name: nyayo, City: "Nairobi", Country: "Kenya", Capacity: 30000},
	{Name: mkapa, City: "Dar es Salaam", Country: "Tanzania", Capacity: 60000},
	{Name: amaan, City: "Zanzibar", Country: "Tanzania", Capacity: 15000},
	{Name: mandela, City: "Kampala", Country: "Uganda", Capacity: 45000},
}

var Categories = []model.TicketCategory{
	{Name: "VIP", Description: "Premium seating with exclusive amenities"},
	{Name: "Regular", Description: "Standard stadium seating"},
	{Name: "Student", Description: "Discounted tickets for students with valid ID"},
}

// Fixture is a scheduled match by team code and venue name.  Kickoff is
// "2006-01-02 15:04" in UTC.
type Fixture struct {
	Home, Away string
	Venue      string
	Kickoff    string
	Group      model.Group
}

var Fixtures = []Fixture{
	{"KEN", "DRC", kasarani, "2025-08-03 15:00", model.GroupA},
	{"ANG", "ZAM", nyayo, "2025-08-03 18:00", model.GroupA},
	{"DRC", "MAR", nyayo, "2025-08-07 17:00", model.GroupA},
	{"ANG", "KEN", kasarani, "2025-08-07 20:00", model.GroupA},
	{"KEN", "MAR", kasarani, "2025-08-10 15:00", model.GroupA},
	{"ZAM", "ANG", nyayo, "2025-08-10 18:00", model.GroupA},
	{"MAR", "ZAM", nyayo, "2025-08-14 17:00", model.GroupA},
	{"ANG", "DRC", kasarani, "2025-08-14 20:00", model.GroupA},
	{"DRC", "MAR", nyayo, "2025-08-17 15:00", model.GroupA},
	{"ZAM", "KEN", kasarani, "2025-08-17 15:00", model.GroupA},

	{"TAN", "MAD", mkapa, "2025-08-02 19:00", model.GroupB},
	{"BFA", "MTN", mkapa, "2025-08-02 20:00", model.GroupB},
	{"TAN", "BFA", mkapa, "2025-08-06 17:00", model.GroupB},
	{"MAD", "MTN", mkapa, "2025-08-06 20:00", model.GroupB},
	{"MTN", "CTA", mkapa, "2025-08-11 17:00", model.GroupB},
	{"MAD", "BFA", mkapa, "2025-08-11 20:00", model.GroupB},
	{"CTA", "TAN", mkapa, "2025-08-15 17:00", model.GroupB},
	{"MTN", "MAD", mkapa, "2025-08-15 20:00", model.GroupB},

	{"UGA", "ALG", mandela, "2025-08-04 17:00", model.GroupC},
	{"NIG", "GUI", mandela, "2025-08-04 20:00", model.GroupC},
	{"GUI", "RSA", mandela, "2025-08-08 17:00", model.GroupC},
	{"UGA", "NIG", mandela, "2025-08-08 20:00", model.GroupC},
	{"NIG", "RSA", mandela, "2025-08-12 17:00", model.GroupC},
	{"GUI", "ALG", mandela, "2025-08-12 20:00", model.GroupC},
	{"RSA", "UGA", mandela, "2025-08-16 17:00", model.GroupC},
	{"ALG", "NIG", mandela, "2025-08-16 20:00", model.GroupC},

	{"SEN", "CGO", nyayo, "2025-08-05 17:00", model.GroupD},
	{"SDN", "NGA", nyayo, "2025-08-05 20:00", model.GroupD},
	{"CGO", "SDN", nyayo, "2025-08-09 17:00", model.GroupD},
	{"SEN", "NGA", nyayo, "2025-08-09 20:00", model.GroupD},
	{"SDN", "NGA", nyayo, "2025-08-13 17:00", model.GroupD},
	{"CGO", "SEN", nyayo, "2025-08-13 20:00", model.GroupD},
	{"ALG", "NIG", nyayo, "2025-08-18 20:00", model.GroupD},
}

// BasePrice is the price list applied to every match for one category.
type BasePrice struct {
	KES, UGX, TZS string
	Quantity      int
}

var BasePrices = map[string]BasePrice{
	"VIP":     {KES: "1000", UGX: "15000", TZS: "25000", Quantity: 200},
	"Regular": {KES: "500", UGX: "7500", TZS: "12500", Quantity: 1000},
	"Student": {KES: "200", UGX: "3000", TZS: "5000", Quantity: 200},
}
