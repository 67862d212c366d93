package model

import "fmt"

// Team is a national side taking part in the tournament.  Code is the
// three letter abbreviation used on fixtures (KEN, UGA, ...).
type Team struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	FlagImage *string `json:"flag_image,omitempty"` // URL, nullable
}

func (t Team) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Code)
}

// Venue is a stadium hosting matches.
type Venue struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Capacity int    `json:"capacity"`
}

func (v Venue) String() string {
	return fmt.Sprintf("%s, %s", v.Name, v.City)
}

// TicketCategory is a seating class (VIP, Regular, Student).
type TicketCategory struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c TicketCategory) String() string { return c.Name }
