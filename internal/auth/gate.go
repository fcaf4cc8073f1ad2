package auth

import (
	"worktrack/internal/apperror"
	"worktrack/internal/models"
)

type RoleSet map[models.Role]struct{}

func Roles(roles ...models.Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RoleSet) Has(r models.Role) bool {
	_, ok := s[r]
	return ok
}

// Authorize fails with apperror.ErrForbidden unless user's role is allowed.
// The user must already be resolved and active.
func Authorize(user *models.User, allowed RoleSet) error {
	if user == nil || !allowed.Has(user.Role) {
		return apperror.ErrForbidden
	}
	return nil
}

// Capability names a group of endpoints sharing one allowed-role set.
type Capability string

const (
	CapAdmin       Capability = "admin"
	CapDayLog      Capability = "day"
	CapWeek        Capability = "week"
	CapDailyReport Capability = "reports.daily"
)

var Capabilities = map[Capability]RoleSet{
	CapAdmin:       Roles(models.RoleAdmin),
	CapDayLog:      Roles(models.RoleAdmin, models.RoleEmployee),
	CapWeek:        Roles(models.RoleAdmin, models.RoleEmployee, models.RoleViewer),
	CapDailyReport: Roles(models.RoleAdmin, models.RoleViewer),
}

// Require checks user against the role set registered for c. Unknown
// capabilities deny everyone.
func Require(user *models.User, c Capability) error {
	return Authorize(user, Capabilities[c])
}

// LandingPath is where "/" sends a signed-in user.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin"
	case models.RoleViewer:
		return "/week"
	default:
		return "/day"
	}
}
