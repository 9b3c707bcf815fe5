package constants

// PermissionRoles maps each back office permission to the roles allowed to use it.
var PermissionRoles = map[string][]string{
	ViewEstates:  {Viewer, Editor, Admin},
	CreateEstate: {Editor, Admin},
	EditEstate:   {Editor, Admin},
	DeleteEstate: {Admin},
	ManageUsers:  {Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
