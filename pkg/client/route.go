package client

// DefaultDestination is the landing surface for a role without its own.
const DefaultDestination = "/"

var destinations = map[Role]string{
	RoleFarmer:     "/farmer",
	RoleMandiOwner: "/mandi",
	RoleRetailer:   "/retailer",
	RoleAdmin:      "/admin",
}

// Destination maps a role to the surface a client opens after login.
func Destination(role Role) string {
	if d, ok := destinations[role]; ok {
		return d
	}
	return DefaultDestination
}
