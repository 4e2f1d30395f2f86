package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pricegrid/backend/config"
	"github.com/pricegrid/backend/internal/domain"
	"github.com/pricegrid/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matching config.MatchingConfig
	cache    domain.TableCache
	cacheTTL time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(matching config.MatchingConfig, cache domain.TableCache, cacheTTL time.Duration) *Handler {
	return &Handler{
		matching: matching,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// comparisonRequest is the POST /api/v1/comparison body. Threshold and
// catalog order default to the server configuration when omitted.
type comparisonRequest struct {
	Records             []domain.RawProductRecord `json:"records" binding:"required"`
	SimilarityThreshold *int                      `json:"similarityThreshold,omitempty"`
	CatalogOrder        []string                  `json:"catalogOrder,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricegrid-backend",
		"version": "1.0.0",
	})
}

// BuildComparison accepts a pooled batch of raw records and responds with
// the cross-catalog comparison table. A record without a retailer is the
// one structural failure and yields 400 with no partial table; a batch with
// no matches is a normal 200 with an empty row list.
func (h *Handler) BuildComparison(c *gin.Context) {
	var req comparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	threshold := h.matching.SimilarityThreshold
	if req.SimilarityThreshold != nil {
		threshold = *req.SimilarityThreshold
	}
	if threshold < 0 || threshold > 100 {
		err := fmt.Errorf("%w: similarityThreshold must be in [0,100]", domain.ErrInvalidRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalogOrder := h.matching.CatalogOrder
	if len(req.CatalogOrder) > 0 {
		catalogOrder = req.CatalogOrder
	}

	key, digestErr := requestDigest(req.Records, threshold, catalogOrder)
	useCache := digestErr == nil && h.cache != nil
	if useCache {
		if table, cacheErr := h.cache.Get(c.Request.Context(), key); cacheErr == nil {
			c.JSON(http.StatusOK, table)
			return
		}
	}

	pipeline := usecase.NewPipelineService(usecase.PipelineConfig{
		SimilarityThreshold: threshold,
		CatalogOrder:        catalogOrder,
		MinCatalogs:         h.matching.MinCatalogs,
		EnableDebugLogging:  h.matching.EnableDebugLogging,
	})

	table, err := pipeline.BuildComparison(c.Request.Context(), req.Records)
	if err != nil {
		if errors.Is(err, domain.ErrMissingRetailer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if useCache {
		_ = h.cache.Set(c.Request.Context(), key, table, h.cacheTTL)
	}

	c.JSON(http.StatusOK, table)
}

// requestDigest derives a stable cache key from the request contents.
func requestDigest(records []domain.RawProductRecord, threshold int, catalogOrder []string) (string, error) {
	payload, err := json.Marshal(struct {
		Records      []domain.RawProductRecord `json:"records"`
		Threshold    int                       `json:"threshold"`
		CatalogOrder []string                  `json:"catalogOrder"`
	}{records, threshold, catalogOrder})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
