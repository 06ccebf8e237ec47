package models

// Player is an entry in the player directory. FunNames are display aliases;
// DefaultOrder drives play order for documents that predate explicit player
// ordering.
type Player struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	FunNames     []string `json:"funNames,omitempty"`
	DefaultOrder int      `json:"defaultOrder"`
	Guest        bool     `json:"guest,omitempty"`
	GuestLabel   string   `json:"guestLabel,omitempty"`
	Disabled     bool     `json:"disabled,omitempty"`
	Handicap     int      `json:"handicap,omitempty"`
}

// DisplayName resolves the preferred display name: first fun name, then
// name, then the raw id.
func (p Player) DisplayName() string {
	if len(p.FunNames) > 0 && p.FunNames[0] != "" {
		return p.FunNames[0]
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
