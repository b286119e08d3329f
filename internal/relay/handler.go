package relay

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// DefaultMaxBodyBytes caps the raw request body.
const DefaultMaxBodyBytes = 10000

// Plain-text bodies of the request guards.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgPayloadTooLarge  = "Payload too large"
	msgMissingURL       = "Missing URL"
	msgInvalidJSON      = "Invalid JSON"
)

// Handler serves the relay endpoint. Origin checks and CORS headers are
// applied by middleware in front of it.
type Handler struct {
	relay   *Relay
	maxBody int64
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates the HTTP handler for r.
func NewHandler(r *Relay, maxBody int, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		relay:   r,
		maxBody: int64(maxBody),
		logger:  logger.Named("relay.http"),
		metrics: metrics,
	}
}

// Handle answers one relay request.
func (h *Handler) Handle(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		h.reject(c, "method", http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxBody+1))
	if err != nil {
		h.fail(c, err)
		return
	}
	if int64(len(body)) > h.maxBody {
		h.reject(c, "size", http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
		return
	}

	var req summary.Request
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.reject(c, "json", http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.URL == "" {
		h.reject(c, "url", http.StatusBadRequest, msgMissingURL)
		return
	}

	res, err := h.relay.Summarize(c.Request.Context(), req.URL, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) reject(c *gin.Context, reason string, status int, msg string) {
	if h.metrics != nil {
		h.metrics.RecordRejection(reason)
	}
	c.String(status, msg)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.logger.Error("Relay request failed",
		zap.Error(err),
		zap.Bool("upstream", errors.Is(err, ErrUpstream)),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
