package v1

import (
	"net/http"

	"sparknest-backend/internal/delivery/http/response"
	"sparknest-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const demoMessage = "Hello from the SparkNest Studio API"

type MiscHandler struct {
	pingMessage string
	healthUC    domain.HealthUsecase
}

// NewMiscHandler registers the informational routes
func NewMiscHandler(public *gin.RouterGroup, pingMessage string, healthUC domain.HealthUsecase) {
	handler := &MiscHandler{pingMessage: pingMessage, healthUC: healthUC}

	public.GET("/ping", handler.Ping)
	public.GET("/demo", handler.Demo)
	public.GET("/health", handler.Health)
}

// Ping godoc
// @Summary      Ping
// @Description  Liveness probe returning the configured ping message.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Message
// @Router       /ping [get]
func (h *MiscHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, response.Message{Message: h.pingMessage})
}

// Demo godoc
// @Summary      Demo
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Message
// @Router       /demo [get]
func (h *MiscHandler) Demo(c *gin.Context) {
	c.JSON(http.StatusOK, response.Message{Message: demoMessage})
}

// Health godoc
// @Summary      Health Check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (h *MiscHandler) Health(c *gin.Context) {
	var data map[string]string
	if h.healthUC != nil {
		data = h.healthUC.Check(c.Request.Context())
	}
	response.Success(c, http.StatusOK, "System operational", data)
}
