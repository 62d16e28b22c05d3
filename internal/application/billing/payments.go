package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/domain/settlement"
)

// PaymentUseCase registra y anula pagos contra una factura, recomputando el
// saldo y el estado de pago desde el libro en cada mutación. Toda mutación
// corre dentro de una transacción con la fila de la factura bloqueada, lo que
// serializa pagos concurrentes a la misma factura.
type PaymentUseCase struct {
	txRunner BillingTxRunner
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner BillingTxRunner) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner}
}

// RecordPayment aplica un pago a la factura. Rechaza montos no positivos,
// facturas anuladas y sobrepagos (la suma de pagos APPLIED nunca excede el
// total). Asiento, saldo y estado se confirman como una sola unidad.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, companyID, userID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if in.InvoiceID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var entry *entity.PaymentEntry

	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if inv.PaymentStatus == entity.PaymentStatusAnnulled {
			return domain.ErrInvoiceAnnulled
		}

		// Suma fresca del libro, no el acumulado guardado
		applied, err := paymentRepo.SumAppliedByInvoice(inv.ID)
		if err != nil {
			return err
		}
		if applied.Add(in.Amount).GreaterThan(inv.Total) {
			return domain.ErrOverpayment
		}

		receipt := in.ReceiptNumber
		if receipt == "" {
			receipt = fmt.Sprintf("RC-%d", now.UnixNano())
		}
		entry = &entity.PaymentEntry{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			InvoiceID:     inv.ID,
			CustomerID:    inv.CustomerID,
			ReceiptNumber: receipt,
			Amount:        in.Amount,
			Method:        in.Method,
			Reference:     in.Reference,
			Bank:          in.Bank,
			ReceivedBy:    userID,
			AppliedAt:     now,
			Status:        entity.PaymentEntryApplied,
			CreatedAt:     now,
		}
		if err := paymentRepo.Create(entry); err != nil {
			return err
		}

		applySettlement(inv, applied.Add(in.Amount), now)
		return invoiceRepo.UpdateSettlement(inv)
	})
	if err != nil {
		return nil, err
	}

	resp := paymentToResponse(entry)
	return &resp, nil
}

// VoidPayment anula un asiento del libro: el pago pasa a VOIDED (no se borra)
// y el saldo y estado de la factura se recalculan excluyéndolo. Anular un pago
// ya anulado se rechaza, no se acepta en silencio.
func (uc *PaymentUseCase) VoidPayment(ctx context.Context, companyID, actorID, paymentID, reason string) error {
	if paymentID == "" || reason == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		p, err := paymentRepo.GetByID(paymentID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.CompanyID != companyID {
			return domain.ErrForbidden
		}

		// Orden de bloqueo: siempre factura primero, igual que RecordPayment
		inv, err := invoiceRepo.GetByIDForUpdate(p.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("pago %s referencia factura %s: %w", p.ID, p.InvoiceID, domain.ErrLedgerInconsistent)
		}

		// Releer el pago ya con la factura bloqueada
		p, err = paymentRepo.GetByIDForUpdate(paymentID)
		if err != nil {
			return err
		}
		if p.Status == entity.PaymentEntryVoided {
			return domain.ErrAlreadyVoided
		}

		p.Status = entity.PaymentEntryVoided
		p.VoidedBy = actorID
		voidedAt := now
		p.VoidedAt = &voidedAt
		p.VoidReason = reason
		if err := paymentRepo.UpdateVoid(p); err != nil {
			return err
		}

		applied, err := paymentRepo.SumAppliedByInvoice(inv.ID)
		if err != nil {
			return err
		}
		applySettlement(inv, applied, now)
		return invoiceRepo.UpdateSettlement(inv)
	})
}

// AnnulInvoice anula la factura de forma irreversible. Solo se permite
// mientras ningún pago esté aplicado: con pagos vigentes el caller debe
// anularlos primero vía el libro.
func (uc *PaymentUseCase) AnnulInvoice(ctx context.Context, companyID, actorID, invoiceID, reason string) error {
	if invoiceID == "" || reason == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if inv.PaymentStatus == entity.PaymentStatusAnnulled {
			return domain.ErrConflict
		}

		applied, err := paymentRepo.SumAppliedByInvoice(inv.ID)
		if err != nil {
			return err
		}
		if applied.GreaterThan(decimal.Zero) {
			return domain.ErrPaymentsApplied
		}

		inv.PaymentStatus = entity.PaymentStatusAnnulled
		inv.AnnulledBy = actorID
		annulledAt := now
		inv.AnnulledAt = &annulledAt
		inv.AnnulReason = reason
		inv.UpdatedAt = now
		return invoiceRepo.UpdateSettlement(inv)
	})
}

// RefreshState vuelve a evaluar la regla de transición contra el reloj (ej.
// una factura PENDING cuyo vencimiento ya pasó sin eventos de pago).
func (uc *PaymentUseCase) RefreshState(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceStateResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var out *dto.InvoiceStateResponse
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}

		applied, err := paymentRepo.SumAppliedByInvoice(inv.ID)
		if err != nil {
			return err
		}
		applySettlement(inv, applied, now)
		if err := invoiceRepo.UpdateSettlement(inv); err != nil {
			return err
		}
		out = &dto.InvoiceStateResponse{
			ID:            inv.ID,
			PaymentStatus: inv.PaymentStatus,
			AmountPaid:    inv.AmountPaid,
			Outstanding:   inv.Outstanding,
			DaysOverdue:   settlement.DaysOverdue(inv.PaymentStatus, inv.DueDate, now),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applySettlement vuelca al agregado el resultado de derivar saldo y estado
// desde la suma fresca del libro.
func applySettlement(inv *entity.Invoice, applied decimal.Decimal, now time.Time) {
	annulled := inv.PaymentStatus == entity.PaymentStatusAnnulled
	inv.AmountPaid = applied
	inv.Outstanding = inv.Total.Sub(applied)
	inv.PaymentStatus = settlement.DeriveState(inv.Total, applied, inv.DueDate, now, annulled)
	if inv.PaymentStatus == entity.PaymentStatusPaid && inv.PaidAt == nil {
		paidAt := now
		inv.PaidAt = &paidAt
	}
	inv.UpdatedAt = now
}
