package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// DeriveState recalcula el estado de pago desde cero como función de
// (total, pagado, fecha de vencimiento, hoy, anulada). No parchea estados
// previos: derivar siempre desde el libro elimina la deriva incremental.
func DeriveState(total, amountPaid decimal.Decimal, dueDate, today time.Time, annulled bool) string {
	if annulled {
		return entity.PaymentStatusAnnulled
	}
	outstanding := total.Sub(amountPaid)
	switch {
	case outstanding.LessThanOrEqual(decimal.Zero):
		return entity.PaymentStatusPaid
	case outstanding.LessThan(total):
		return entity.PaymentStatusPartial
	case daysBetween(dueDate, today) > 0:
		return entity.PaymentStatusOverdue
	default:
		return entity.PaymentStatusPending
	}
}

// DaysOverdue devuelve los días de mora de una factura a la fecha dada.
// Facturas pagadas o anuladas reportan 0; dentro del plazo, 0; vencidas, los
// días calendario completos transcurridos desde el vencimiento. Es una
// derivación de lectura: nunca se persiste, así siempre es consistente con el
// reloj del momento de la consulta.
func DaysOverdue(paymentStatus string, dueDate, today time.Time) int {
	if paymentStatus == entity.PaymentStatusPaid || paymentStatus == entity.PaymentStatusAnnulled {
		return 0
	}
	if d := daysBetween(dueDate, today); d > 0 {
		return d
	}
	return 0
}

// daysBetween cuenta días calendario de from a to (negativo si to es anterior).
// Compara fechas, no instantes: una factura vence al final de su día.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
