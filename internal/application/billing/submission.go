package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// SubmissionUseCase acepta las actualizaciones de estado del colaborador
// externo de facturación electrónica. El motor no transmite ni interpreta
// nada: guarda el estado, la referencia opaca y el payload tal cual llegan,
// y no toca ningún otro campo de la factura.
type SubmissionUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewSubmissionUseCase construye el caso de uso.
func NewSubmissionUseCase(invoiceRepo repository.InvoiceRepository) *SubmissionUseCase {
	return &SubmissionUseCase{invoiceRepo: invoiceRepo}
}

// UpdateStatus registra el estado reportado por el colaborador externo.
func (uc *SubmissionUseCase) UpdateStatus(ctx context.Context, companyID, invoiceID string, in dto.SubmissionStatusUpdate) error {
	if invoiceID == "" || !entity.ValidSubmissionStatus(in.Status) {
		return domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return domain.ErrForbidden
	}

	inv.SubmissionStatus = in.Status
	if in.Ref != "" {
		inv.SubmissionRef = in.Ref
	}
	if in.Response != "" {
		inv.SubmissionResponse = in.Response
	}
	inv.UpdatedAt = time.Now()
	return uc.invoiceRepo.UpdateSubmission(inv)
}
