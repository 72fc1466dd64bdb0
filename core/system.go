package core

import "github.com/lib/pq"

// System stores the capability configuration. The administrator set is
// fixed at construction; admins hold the liquidator capability by default.
type System struct {
	Admins      pq.StringArray `sql:"type:varchar(1024)" json:"admins"`
	Liquidators pq.StringArray `sql:"type:varchar(1024)" json:"liquidators"`
	Version     string         `json:"version"`
}

// IsAdmin is admin
func (s *System) IsAdmin(userID string) bool {
	if len(s.Admins) == 0 {
		return false
	}

	for _, a := range s.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// IsLiquidator is permitted to call liquidate
func (s *System) IsLiquidator(userID string) bool {
	if s.IsAdmin(userID) {
		return true
	}

	for _, l := range s.Liquidators {
		if l == userID {
			return true
		}
	}

	return false
}
