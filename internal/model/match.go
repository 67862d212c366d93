package model

import (
	"fmt"
	"strings"
	"time"
)

// Group is the tournament group a fixture belongs to.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
	GroupC Group = "C"
	GroupD Group = "D"
)

// Groups lists the valid groups in display order.
var Groups = []Group{GroupA, GroupB, GroupC, GroupD}

// ParseGroup accepts "A".."D" case-insensitively.
func ParseGroup(s string) (Group, bool) {
	g := Group(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range Groups {
		if v == g {
			return g, true
		}
	}
	return "", false
}

// Stage is the phase of the tournament a match is played in.
type Stage string

const (
	StageGroup   Stage = "group"
	StageQuarter Stage = "quarter"
	StageSemi    Stage = "semi"
	StageThird   Stage = "third"
	StageFinal   Stage = "final"
)

var stageLabels = map[Stage]string{
	StageGroup:   "Group Stage",
	StageQuarter: "Quarter Final",
	StageSemi:    "Semi Final",
	StageThird:   "Third Place",
	StageFinal:   "Final",
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// Label returns the human readable stage name.
func (s Stage) Label() string { return stageLabels[s] }

// Match is a fixture between two distinct teams.  HomeTeam, AwayTeam and
// Venue are populated by joined queries and may be zero on plain reads.
type Match struct {
	ID          uint64    `json:"id"`
	HomeTeamID  uint64    `json:"home_team_id"`
	AwayTeamID  uint64    `json:"away_team_id"`
	VenueID     uint64    `json:"venue_id"`
	DateTime    time.Time `json:"date_time"`
	Group       Group     `json:"group"`
	MatchType   Stage     `json:"match_type"`
	IsCompleted bool      `json:"is_completed"`

	HomeTeam Team  `json:"home_team"`
	AwayTeam Team  `json:"away_team"`
	Venue    Venue `json:"venue"`
}

// String renders "KEN vs DRC - 2025-08-03 15:00".
func (m Match) String() string {
	return fmt.Sprintf("%s vs %s - %s", m.HomeTeam.Code, m.AwayTeam.Code, m.DateTime.UTC().Format("2006-01-02 15:04"))
}

// Upcoming reports whether the match is still open for sale at now.
func (m Match) Upcoming(now time.Time) bool {
	return !m.IsCompleted && !m.DateTime.Before(now)
}
