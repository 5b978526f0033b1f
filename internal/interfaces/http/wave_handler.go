package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/internal/application/dto"
	"github.com/jhoicas/Inventario-wms/internal/application/wave"
)

// WaveHandler ciclo de vida de las olas y lecturas de picking y clasificación.
type WaveHandler struct {
	uc *wave.UseCase
}

// NewWaveHandler construye el handler.
func NewWaveHandler(uc *wave.UseCase) *WaveHandler {
	return &WaveHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ola
// @Description  Agrega la demanda de los pedidos por código de barras. La ola queda en DRAFT.
// @Tags         waves
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                 true  "Operador"
// @Param        body       body    dto.CreateWaveRequest  true  "order_ids, note"
// @Success      201  {object}  dto.CreateWaveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waves [post]
func (h *WaveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWaveRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), wave.CreateInput{OrderIDs: in.OrderIDs, Note: in.Note, UserID: GetUserID(c)})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateWaveResponse{
		Wave:       dto.FromWave(out.Wave),
		Unresolved: dto.FromUnresolved(out.Unresolved),
	})
}

// Get godoc
// @Summary      Obtener ola
// @Tags         waves
// @Produce      json
// @Param        id   path  string  true  "Ola"
// @Success      200  {object}  dto.WaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waves/{id} [get]
func (h *WaveHandler) Get(c *fiber.Ctx) error {
	w, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromWave(w))
}

// Delete godoc
// @Summary      Eliminar ola
// @Description  Solo en DRAFT; libera los pedidos para otra ola.
// @Tags         waves
// @Param        X-User-ID  header  string  true  "Operador"
// @Param        id         path    string  true  "Ola"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waves/{id} [delete]
func (h *WaveHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Start godoc
// @Summary      Iniciar ola
// @Description  Reserva FEFO todas las líneas y pasa a PICKING. Cualquier faltante revierte todo.
// @Tags         waves
// @Produce      json
// @Param        X-User-ID  header  string  true  "Operador"
// @Param        id         path    string  true  "Ola"
// @Success      200  {object}  dto.WaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "CONFLICT o INSUFFICIENT_STOCK"
// @Router       /api/waves/{id}/start [post]
func (h *WaveHandler) Start(c *fiber.Ctx) error {
	w, err := h.uc.Start(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromWave(w))
}

// PickScan godoc
// @Summary      Lectura de picking
// @Description  Idempotente por request_id: un reintento devuelve el resultado original.
// @Tags         waves
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string               true  "Operador"
// @Param        id         path    string               true  "Ola"
// @Param        body       body    dto.PickScanRequest  true  "request_id, barcode, quantity"
// @Success      200  {object}  wave.PickScanResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waves/{id}/pick-scans [post]
func (h *WaveHandler) PickScan(c *fiber.Ctx) error {
	var in dto.PickScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.PickScan(c.Context(), wave.PickScanInput{
		RequestID: in.RequestID,
		WaveID:    c.Params("id"),
		Barcode:   in.Barcode,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SortingScan godoc
// @Summary      Lectura de clasificación
// @Description  Idempotente por request_id. Nunca excede lo requerido por (pedido, código).
// @Tags         waves
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                  true  "Operador"
// @Param        id         path    string                  true  "Ola"
// @Param        body       body    dto.SortingScanRequest  true  "request_id, order_id, barcode, quantity"
// @Success      200  {object}  wave.SortingScanResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waves/{id}/sorting-scans [post]
func (h *WaveHandler) SortingScan(c *fiber.Ctx) error {
	var in dto.SortingScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SortingScan(c.Context(), wave.SortingScanInput{
		RequestID: in.RequestID,
		WaveID:    c.Params("id"),
		OrderID:   in.OrderID,
		Barcode:   in.Barcode,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar ola
// @Description  Requiere SORTING y todos los bins en DONE.
// @Tags         waves
// @Produce      json
// @Param        X-User-ID  header  string  true  "Operador"
// @Param        id         path    string  true  "Ola"
// @Success      200  {object}  dto.WaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waves/{id}/complete [post]
func (h *WaveHandler) Complete(c *fiber.Ctx) error {
	w, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromWave(w))
}
