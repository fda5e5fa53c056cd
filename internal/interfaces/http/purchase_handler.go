package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empleos-pro/internal/application/dto"
	"github.com/tu-usuario/empleos-pro/internal/application/purchase"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP del ciclo de vida de compras.
type PurchaseHandler struct {
	uc *purchase.UseCase
}

// NewPurchaseHandler construye el handler inyectando el caso de uso.
func NewPurchaseHandler(uc *purchase.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar compra de plan (acredita el cupo del plan)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "Plan y medio de pago"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordPurchase(c.Context(), GetTenantID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar compras (reporte con filtros)
// @Tags         purchases
// @Produce      json
// @Param        tenant_id   query  string  false  "Filtrar por tenant (solo admin)"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        min_amount  query  string  false  "Monto mínimo"
// @Param        max_amount  query  string  false  "Monto máximo"
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var in dto.ListPurchasesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	// Un usuario company solo ve sus propias compras; admin puede filtrar libre
	if GetRole(c) != entity.RoleAdmin {
		in.TenantID = GetTenantID(c)
	}
	out, err := h.uc.ListPurchases(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra por ID (barrido perezoso al leer)
// @Tags         purchases
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchase(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
	}
	if GetRole(c) != entity.RoleAdmin && out.TenantID != GetTenantID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la compra pertenece a otro tenant"})
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar compra activa (admin)
// @Tags         purchases
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.CancelPurchase(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Sweep godoc
// @Summary      Barrido manual de vencimientos (admin)
// @Tags         purchases
// @Produce      json
// @Success      200  {object}  dto.SweepResponse
// @Router       /api/purchases/sweep [post]
func (h *PurchaseHandler) Sweep(c *fiber.Ctx) error {
	out, err := h.uc.SweepExpired(time.Now())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}
