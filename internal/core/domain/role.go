package domain

// RouteTable is the single source of truth mapping roles to the view path a
// user lands on after login. Both the login flow and the router registration
// read it, so a destination can never drift from a registered route.
type RouteTable struct {
	login  string
	byRole map[Role]string
}

// NewRouteTable builds a table from explicit per-role paths. Empty paths fall
// back to the defaults; the login path defaults to "/login".
func NewRouteTable(login, citizen, distributor, official, admin string) RouteTable {
	t := DefaultRoutes()
	if login != "" {
		t.login = login
	}
	for role, path := range map[Role]string{
		RoleCitizen:     citizen,
		RoleDistributor: distributor,
		RoleOfficial:    official,
		RoleAdmin:       admin,
	} {
		if path != "" {
			t.byRole[role] = path
		}
	}
	return t
}

// DefaultRoutes returns the documented role→route mapping.
func DefaultRoutes() RouteTable {
	return RouteTable{
		login: "/login",
		byRole: map[Role]string{
			RoleCitizen:     "/citizen",
			RoleDistributor: "/distributor",
			RoleOfficial:    "/official",
			RoleAdmin:       "/admin-dashboard",
		},
	}
}

// For resolves the post-login destination for a role. It is total: any role
// without a mapping resolves to the login view.
func (t RouteTable) For(role Role) string {
	if path, ok := t.byRole[role]; ok {
		return path
	}
	return t.login
}

// Login returns the login view path, the redirect target for every DENY.
func (t RouteTable) Login() string {
	return t.login
}
