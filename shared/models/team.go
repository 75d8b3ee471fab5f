// shared/models/team.go
package models

// Team is a bidding team in the auction.
type Team struct {
	ID      int     `json:"id"`      // Caller-assigned, unique
	Name    string  `json:"name"`
	Budget  float64 `json:"budget"`  // Remaining purse
	Players []any   `json:"players"` // References to won players, not validated
	Color   string  `json:"color"`   // Display hint (CSS class)
}

// DefaultTeamBudget is the purse every seeded team starts with.
const DefaultTeamBudget = 75000

// DefaultTeams returns the teams seeded on first startup.
func DefaultTeams() []Team {
	return []Team{
		{ID: 1, Name: "Mumbai Warriors", Budget: DefaultTeamBudget, Players: []any{}, Color: "bg-blue-600"},
		{ID: 2, Name: "Delhi Capitals", Budget: DefaultTeamBudget, Players: []any{}, Color: "bg-red-600"},
	}
}
