package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-wms/internal/application/dto"
	"github.com/rs/zerolog"
)

// HeaderUserID cabecera con el identificador opaco del operador (solo atribución).
const HeaderUserID = "X-User-ID"

// LocalUserID key de c.Locals para el operador.
const LocalUserID = "user_id"

// ActorMiddleware copia X-User-ID a c.Locals. No autentica: el identificador solo se usa
// para atribuir movimientos y lecturas.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := strings.TrimSpace(c.Get(HeaderUserID)); userID != "" {
			c.Locals(LocalUserID, userID)
		}
		return c.Next()
	}
}

// RequireActor rechaza con 401 las escrituras sin operador.
func RequireActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ACTOR", Message: HeaderUserID + " requerido"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el operador del contexto (después de ActorMiddleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// AccessLog registra cada request con su request id.
func AccessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		log.Info().
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("actor", GetUserID(c)).
			Msg("http")
		return err
	}
}
