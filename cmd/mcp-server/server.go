package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/njchilds90/gosimp"
	"github.com/njchilds90/gosimp/internal/telemetry"
	"github.com/njchilds90/gosimp/internal/tools"
)

type server struct {
	dispatcher   *tools.Dispatcher
	logger       *slog.Logger
	maxBodyBytes int64
}

func newServer(d *tools.Dispatcher, logger *slog.Logger, maxBodyBytes int64) *server {
	if logger == nil {
		logger = slog.Default()
	}
	return &server{dispatcher: d, logger: logger, maxBodyBytes: maxBodyBytes}
}

type batchRequest struct {
	Requests []tools.ToolRequest `json:"requests"`
}

type batchResponse struct {
	Responses []tools.ToolResponse `json:"responses"`
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), observeRequests())

	r.POST("/tool", s.handleTool)
	r.POST("/batch", s.handleBatch)
	r.GET("/schema", s.handleSchema)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(telemetry.MetricsHandler()))
	return r
}

// observeRequests counts every request by route and status code.
func observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		telemetry.ObserveHTTPRequest(route, strconv.Itoa(c.Writer.Status()))
	}
}

// handleTool handles POST /tool.
func (s *server) handleTool(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID)

	var req tools.ToolRequest
	if status, err := s.decode(c, &req); err != nil {
		logger.Warn("invalid tool request", "error", err)
		c.JSON(status, tools.ToolResponse{Error: err.Error()})
		return
	}

	resp, err := s.dispatcher.Call(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		logger.Info("tool call rejected", "tool", req.Tool, "status", status, "error", err)
		c.JSON(status, tools.ToolResponse{ID: req.ID, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleBatch handles POST /batch.
func (s *server) handleBatch(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With("request_id", requestID)

	var req batchRequest
	if status, err := s.decode(c, &req); err != nil {
		logger.Warn("invalid batch request", "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out, err := s.dispatcher.Batch(c.Request.Context(), req.Requests)
	if err != nil {
		status := statusFor(err)
		logger.Info("batch rejected", "size", len(req.Requests), "status", status, "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	logger.Debug("batch completed", "size", len(out))
	c.JSON(http.StatusOK, batchResponse{Responses: out})
}

// handleSchema handles GET /schema.
func (s *server) handleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(tools.MCPToolSpec()))
}

// handleHealth handles GET /health.
func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// decode reads exactly one JSON object into v, rejecting unknown fields,
// trailing data and bodies above the configured limit.
func (s *server) decode(c *gin.Context, v interface{}) (int, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	defer c.Request.Body.Close()

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, err
		}
		return http.StatusBadRequest, err
	}
	if dec.More() {
		return http.StatusBadRequest, errors.New("invalid JSON: trailing data")
	}
	return http.StatusOK, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, tools.ErrMissingParam), errors.Is(err, tools.ErrInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, tools.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, gosimp.ErrUnsupportedDerivative):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// getOrCreateRequestID gets or creates a request ID.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
