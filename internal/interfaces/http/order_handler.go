package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/internal/application/dto"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
)

// OrderHandler asignación directa de pedidos (sin ola).
type OrderHandler struct {
	uc *inventory.AllocateOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *inventory.AllocateOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Allocate godoc
// @Summary      Reservar stock FEFO para un pedido
// @Description  El faltante no es un error: se devuelve por línea. Con all_or_nothing y faltante
// @Description  no se escribe nada y committed=false.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                    true   "Operador"
// @Param        id         path    string                    true   "Pedido"
// @Param        body       body    dto.AllocateOrderRequest  false  "all_or_nothing"
// @Success      201  {object}  dto.AllocateOrderResponse  "reservas confirmadas"
// @Success      200  {object}  dto.AllocateOrderResponse  "faltante en modo todo-o-nada"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocate [post]
func (h *OrderHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.AllocateForOrder(c.Context(), c.Params("id"), GetUserID(c), in.AllOrNothing)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if !out.Committed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.FromOrderAllocation(out))
}
