package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/forkcast/backend/internal/service"
	"github.com/pageza/forkcast/backend/internal/types"
)

// SearchHandler handles recipe search requests
type SearchHandler struct {
	searchService *service.SearchService
	store         *service.RecipeStore
}

// NewSearchHandler creates a new SearchHandler instance. store may be nil;
// result persistence is then skipped.
func NewSearchHandler(searchService *service.SearchService, store *service.RecipeStore) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		store:         store,
	}
}

// RegisterRoutes registers the search routes
func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/search", h.Search)
}

// Search runs the full pipeline for one free-text query. The response is
// always well-formed; only a retrieval failure surfaces as an error.
func (h *SearchHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Recipe search failed: " + err.Error()})
		return
	}

	if h.store != nil && len(response.Recipes) > 0 {
		if err := h.store.SaveResults(c.Request.Context(), response.Recipes); err != nil {
			// Persistence is best-effort; the caller still gets results.
			log.Printf("failed to save search results: %v", err)
		}
	}

	c.JSON(http.StatusOK, response)
}
