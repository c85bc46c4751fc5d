package usecases

// Login redirects per role
const (
	AdminRedirect  = "/admin/dashboard"
	PortalRedirect = "/portal/profile"
)

// Confirmation page messages
const (
	msgConfirmInvalidLink = "Enlace inválido o expirado."
	msgConfirmAmbiguous   = "No pudimos validar el enlace. Es posible que tu cuenta ya esté verificada; intenta iniciar sesión en la app."
	msgConfirmSuccess     = "Tu correo ha sido confirmado correctamente. Ya puedes regresar a la aplicación e iniciar sesión."
)

const (
	dashboardPendingLimit  = 5
	dashboardUpcomingLimit = 5
)
