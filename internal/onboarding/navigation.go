package onboarding

import authdomain "github.com/crestline/irportal/internal/auth/domain"

// Route is one visible navigation entry.
type Route struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var adminRoutes = []Route{
	{Path: AdminHome, Label: "Dashboard"},
	{Path: "/admin/investors", Label: "Investors"},
	{Path: "/admin/invites", Label: "Invites"},
	{Path: "/admin/documents", Label: "Documents"},
}

var investorRoutes = []Route{
	{Path: InvestorHome, Label: "Overview"},
	{Path: "/investor/project", Label: "Project"},
	{Path: "/investor/invest", Label: "Invest"},
	{Path: "/investor/documents", Label: "Documents"},
}

// RoutesFor returns the ordered route set for a role. The admin and investor
// sets are disjoint; the guard relies on the same partition.
func RoutesFor(role authdomain.Role) []Route {
	var src []Route
	if role == authdomain.RoleAdmin {
		src = adminRoutes
	} else {
		src = investorRoutes
	}
	out := make([]Route, len(src))
	copy(out, src)
	return out
}
