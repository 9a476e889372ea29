package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada fase de seeding
// traduce a esta taxonomía los fallos de sus colaboradores remotos.
var (
	ErrConfigMissing      = errors.New("archivo de configuración no encontrado")
	ErrCredentialsUnset   = errors.New("variables de entorno de credenciales sin definir")
	ErrServiceUnavailable = errors.New("servicio de identidad no disponible")
	ErrStoreUnavailable   = errors.New("almacén de documentos no disponible")
	ErrRemoteWrite        = errors.New("fallo de escritura remota")
	ErrGeneration         = errors.New("el generador de datos no pudo producir el campo solicitado")
	ErrMalformedRecord    = errors.New("documento con campos faltantes o inválidos")
	ErrEmailExists        = errors.New("el email ya está registrado en el servicio de identidad")
)
