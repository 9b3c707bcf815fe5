package constants

const (
	ViewEstates  = "view_estates"
	CreateEstate = "create_estate"
	EditEstate   = "edit_estate"
	DeleteEstate = "delete_estate"
	ManageUsers  = "manage_users"
)

const (
	Admin  = "admin"
	Editor = "editor"
	Viewer = "viewer"
)

// ValidRoles is the set of roles an AdminUser may hold.
var ValidRoles = []string{Viewer, Editor, Admin}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
