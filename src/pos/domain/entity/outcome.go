package entity

// SubmitStatus indica cómo quedó registrada una venta al cerrarla en caja.
type SubmitStatus string

const (
	// SubmitDelivered: el backend confirmó la orden en el momento.
	SubmitDelivered SubmitStatus = "DELIVERED"
	// SubmitDeferred: la venta quedó aceptada localmente y encolada para sync.
	// Para el cajero es una venta completada, no pendiente.
	SubmitDeferred SubmitStatus = "DEFERRED"
)
