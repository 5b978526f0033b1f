package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/internal/application/dto"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de stock.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	balances  *inventory.BalanceUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, balances *inventory.BalanceUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, balances: balances}
}

// Receive godoc
// @Summary      Registrar recepción
// @Description  Busca o crea el lote (producto, batch, vencimiento) y registra un movimiento receipt
// @Description  (u opening_balance si opening_balance=true).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string              true  "Operador"
// @Param        body       body    dto.ReceiptRequest  true  "product_id, batch, expiry_date, location_id, quantity"
// @Success      201  {object}  dto.ReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	expiry, err := dto.ParseDate(in.ExpiryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expiry_date debe tener formato YYYY-MM-DD"})
	}
	out, err := h.movements.Receive(c.Context(), inventory.ReceiptInput{
		ProductID:  in.ProductID,
		Batch:      in.Batch,
		ExpiryDate: expiry,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		DocumentID: in.DocumentID,
		UserID:     GetUserID(c),
		Opening:    in.Opening,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptResponse{
		LotID:      out.Lot.ID,
		LotCreated: out.LotCreated,
		Movement:   dto.FromMovement(out.Movement),
	})
}

// Adjust godoc
// @Summary      Ajuste de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string             true  "Operador"
// @Param        body       body    dto.AdjustRequest  true  "quantity con signo"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mov, err := h.movements.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:  in.ProductID,
		LotID:      in.LotID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		DocumentID: in.DocumentID,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// Transfer godoc
// @Summary      Traslado entre ubicaciones
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string               true  "Operador"
// @Param        body       body    dto.TransferRequest  true  "from_location_id, to_location_id, quantity, putaway"
// @Success      201  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	list, err := h.movements.Transfer(c.Context(), inventory.TransferInput{
		ProductID:      in.ProductID,
		LotID:          in.LotID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Putaway:        in.Putaway,
		DocumentID:     in.DocumentID,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovements(list))
}

// Balance godoc
// @Summary      Saldo desde el libro
// @Tags         inventory
// @Produce      json
// @Param        product_id   query  string  true   "Producto"
// @Param        lot_id       query  string  false  "Lote"
// @Param        location_id  query  string  false  "Ubicación"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/balance [get]
func (h *InventoryHandler) Balance(c *fiber.Ctx) error {
	productID, lotID, locationID := c.Query("product_id"), c.Query("lot_id"), c.Query("location_id")
	b, err := h.balances.Balance(c.Context(), productID, lotID, locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		ProductID:  productID,
		LotID:      lotID,
		LocationID: locationID,
		OnHand:     b.OnHand,
		Reserved:   b.Reserved,
		Available:  b.Available(),
	})
}

// Movements godoc
// @Summary      Auditoría del libro
// @Tags         inventory
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        lot_id       query  string  false  "Lote"
// @Param        location_id  query  string  false  "Ubicación"
// @Param        doc_type     query  string  false  "Tipo de documento origen"
// @Param        doc_id       query  string  false  "Documento origen"
// @Param        limit        query  int     false  "Límite"  default(100)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 100), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := entity.MovementFilter{
		ProductID:     c.Query("product_id"),
		LotID:         c.Query("lot_id"),
		LocationID:    c.Query("location_id"),
		SourceDocType: c.Query("doc_type"),
		SourceDocID:   c.Query("doc_id"),
	}
	list, err := h.balances.Movements(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items: dto.FromMovements(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Reconcile godoc
// @Summary      Reconciliar proyección contra el libro
// @Description  Reporta diferencias sin corregirlas. Lista vacía = proyección consistente.
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "Producto"
// @Success      200  {array}   dto.DiscrepancyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile/{productId} [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	list, err := h.balances.Reconcile(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromDiscrepancies(list))
}
