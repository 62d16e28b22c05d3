package settlement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/settlement"
)

var (
	hoy        = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	vencimiento = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
)

// ──────────────────────────────────────────────────────────────────────────────
// DeriveState — regla de transición de estados de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveState_SinPagosDentroDelPlazo(t *testing.T) {
	state := settlement.DeriveState(dec("119.00"), dec("0"), vencimiento, hoy, false)
	assert.Equal(t, entity.PaymentStatusPending, state)
}

func TestDeriveState_PagoParcial(t *testing.T) {
	state := settlement.DeriveState(dec("119.00"), dec("50.00"), vencimiento, hoy, false)
	assert.Equal(t, entity.PaymentStatusPartial, state)
}

func TestDeriveState_SaldoEnCero(t *testing.T) {
	state := settlement.DeriveState(dec("119.00"), dec("119.00"), vencimiento, hoy, false)
	assert.Equal(t, entity.PaymentStatusPaid, state)
}

func TestDeriveState_SinPagosYVencida(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	state := settlement.DeriveState(dec("119.00"), dec("0"), ayer, hoy, false)
	assert.Equal(t, entity.PaymentStatusOverdue, state)
}

// Pago parcial en factura vencida: PARTIAL gana sobre OVERDUE — la regla
// evalúa el saldo antes que el vencimiento.
func TestDeriveState_ParcialGanaSobreVencida(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	state := settlement.DeriveState(dec("119.00"), dec("50.00"), ayer, hoy, false)
	assert.Equal(t, entity.PaymentStatusPartial, state)
}

func TestDeriveState_Anulada(t *testing.T) {
	state := settlement.DeriveState(dec("119.00"), dec("0"), vencimiento, hoy, true)
	assert.Equal(t, entity.PaymentStatusAnnulled, state)
}

// El día exacto del vencimiento la factura aún no está en mora: se compara la
// fecha, no el instante.
func TestDeriveState_ElDiaDelVencimientoNoEsMora(t *testing.T) {
	mismoDia := time.Date(2026, 3, 20, 23, 59, 0, 0, time.UTC)
	state := settlement.DeriveState(dec("119.00"), dec("0"), vencimiento, mismoDia, false)
	assert.Equal(t, entity.PaymentStatusPending, state)
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysOverdue — derivación de mora en lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysOverdue_DentroDelPlazo(t *testing.T) {
	dias := settlement.DaysOverdue(entity.PaymentStatusPending, vencimiento, hoy)
	assert.Equal(t, 0, dias)
}

// Factura vencida ayer con estado almacenado aún PENDING: la lectura pura
// reporta 1 día de mora sin esperar a que la regla de transición vuelva a
// evaluarse (el estado guardado solo cambia en el próximo evento de pago o
// refresco explícito).
func TestDaysOverdue_VencidaAyerConEstadoDesactualizado(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	dias := settlement.DaysOverdue(entity.PaymentStatusPending, ayer, hoy)
	assert.Equal(t, 1, dias)
}

func TestDaysOverdue_PagadaSiempreCero(t *testing.T) {
	haceUnMes := hoy.AddDate(0, -1, 0)
	dias := settlement.DaysOverdue(entity.PaymentStatusPaid, haceUnMes, hoy)
	assert.Equal(t, 0, dias, "una factura pagada no acumula mora aunque el vencimiento haya pasado")
}

func TestDaysOverdue_AnuladaSiempreCero(t *testing.T) {
	haceUnMes := hoy.AddDate(0, -1, 0)
	dias := settlement.DaysOverdue(entity.PaymentStatusAnnulled, haceUnMes, hoy)
	assert.Equal(t, 0, dias)
}

// Los días de mora son días calendario completos (piso), independientes de la
// hora del día.
func TestDaysOverdue_DiasCalendarioCompletos(t *testing.T) {
	venc := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	lectura := time.Date(2026, 3, 11, 6, 0, 0, 0, time.UTC)
	dias := settlement.DaysOverdue(entity.PaymentStatusOverdue, venc, lectura)
	assert.Equal(t, 10, dias, "del 1 al 11 de marzo hay 10 días calendario de mora")
}
