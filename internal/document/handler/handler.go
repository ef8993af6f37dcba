package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docstore/document-service/internal/document/service"
)

// stable machine-checkable error categories carried in every failure body
const (
	codeValidationError = "validation_error"
	codeNotFound        = "not_found"
	codeStorageFailure  = "storage_failure"
)

type putRequest struct {
	Content string `json:"content"`
}

// RegisterDocumentRoutes wires the document endpoints onto the engine.
func RegisterDocumentRoutes(r *gin.Engine, svc *service.Service) {
	r.PUT("/documents/:id", func(c *gin.Context) {
		id := c.Param("id")

		var req putRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": codeValidationError})
			return
		}

		size, err := svc.Put(c.Request.Context(), id, req.Content)
		if err != nil {
			if errors.Is(err, service.ErrContentEmpty) || errors.Is(err, service.ErrContentTooLarge) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeValidationError})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store document in durable storage", "code": codeStorageFailure})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id, "status": "stored", "size": size})
	})

	r.GET("/documents/:id", func(c *gin.Context) {
		id := c.Param("id")

		d, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "document " + id + " not found", "code": codeNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve document", "code": codeStorageFailure})
			return
		}

		c.JSON(http.StatusOK, d)
	})
}
