package entity

// AuthUser representa un usuario sintético destinado al servicio de identidad.
// El password viaja en claro solo durante la creación remota; el servicio es el
// único dueño del registro durable una vez creado.
type AuthUser struct {
	Email         string
	EmailVerified bool
	PhoneNumber   string // formato E.164
	Password      string
	DisplayName   string // "Nombre Apellido"
	PhotoURL      string
	Disabled      bool
}

// ToMap serializa el usuario con las claves canónicas del reporte.
func (u AuthUser) ToMap() map[string]any {
	return map[string]any{
		"email":          u.Email,
		"email_verified": u.EmailVerified,
		"phone_number":   u.PhoneNumber,
		"password":       u.Password,
		"display_name":   u.DisplayName,
		"photo_url":      u.PhotoURL,
		"disabled":       u.Disabled,
	}
}

// IdentityUser es el handle mínimo que expone el servicio de identidad al
// listar usuarios: el uid asignado por el servicio y el nombre visible.
// Es la unidad que consume el pool de asignación.
type IdentityUser struct {
	UID         string
	DisplayName string
}
