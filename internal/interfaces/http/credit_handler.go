package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empleos-pro/internal/application/dto"
	"github.com/tu-usuario/empleos-pro/internal/application/ledger"
	"github.com/tu-usuario/empleos-pro/internal/domain/entity"
)

// CreditHandler maneja las peticiones HTTP del libro de créditos.
type CreditHandler struct {
	uc          *ledger.UseCase
	statementUC *ledger.StatementUseCase
}

// NewCreditHandler construye el handler inyectando los casos de uso.
func NewCreditHandler(uc *ledger.UseCase, statementUC *ledger.StatementUseCase) *CreditHandler {
	return &CreditHandler{uc: uc, statementUC: statementUC}
}

// Balance godoc
// @Summary      Saldo actual de créditos del tenant
// @Tags         credits
// @Produce      json
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/credits/balance [get]
func (h *CreditHandler) Balance(c *fiber.Ctx) error {
	tenantID := h.resolveTenant(c)
	balance, err := h.uc.GetBalance(c.Context(), tenantID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.BalanceResponse{TenantID: tenantID, Balance: balance})
}

// Transactions godoc
// @Summary      Historial de transacciones de créditos
// @Tags         credits
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.CreditTransactionListResponse
// @Router       /api/credits/transactions [get]
func (h *CreditHandler) Transactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	out, err := h.uc.History(c.Context(), h.resolveTenant(c), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Grant godoc
// @Summary      Otorgar créditos a un tenant (admin)
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GrantCreditsRequest  true  "Tenant, monto y descripción"
// @Success      201   {object}  dto.CreditTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/credits/grant [post]
func (h *CreditHandler) Grant(c *fiber.Ctx) error {
	var in dto.GrantCreditsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.GrantCredits(c.Context(), in.TenantID, in.Amount, in.Description)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Spend godoc
// @Summary      Consumir créditos (publicación de vacante)
// @Description  Rechaza con 409 INSUFFICIENT_BALANCE si el saldo no alcanza;
// @Description  en ese caso no se escribe ninguna transacción.
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SpendCreditsRequest  true  "Monto y descripción"
// @Success      201   {object}  dto.CreditTransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/credits/spend [post]
func (h *CreditHandler) Spend(c *fiber.Ctx) error {
	var in dto.SpendCreditsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SpendCredits(c.Context(), GetTenantID(c), in.Amount, in.Description)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reconcile godoc
// @Summary      Verificar consistencia del libro de un tenant (admin)
// @Tags         credits
// @Produce      json
// @Param        tenant_id  query  string  true  "Tenant a auditar"
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/credits/reconcile [get]
func (h *CreditHandler) Reconcile(c *fiber.Ctx) error {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tenant_id es requerido"})
	}
	out, err := h.uc.Reconcile(c.Context(), tenantID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Extracto de créditos en PDF
// @Tags         credits
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/credits/statement [get]
func (h *CreditHandler) Statement(c *fiber.Ctx) error {
	pdfBytes, err := h.statementUC.Generate(c.Context(), h.resolveTenant(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="extracto-creditos.pdf"`)
	return c.Send(pdfBytes)
}

// resolveTenant: un usuario company opera sobre su propio tenant; admin puede
// indicar otro con ?tenant_id=.
func (h *CreditHandler) resolveTenant(c *fiber.Ctx) string {
	if GetRole(c) == entity.RoleAdmin {
		if q := c.Query("tenant_id"); q != "" {
			return q
		}
	}
	return GetTenantID(c)
}
