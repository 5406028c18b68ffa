package handlers

import (
	"net/http"
	"time"

	"github.com/mohabnada13/nory/middleware"
	"github.com/mohabnada13/nory/models"
	"github.com/mohabnada13/nory/storage"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type UploadHandler struct {
	presigner *storage.Presigner
	logger    *zap.Logger
}

// NewUploadHandler accepts a nil presigner; requests then fail with a
// configuration error instead of the service refusing to start.
func NewUploadHandler(presigner *storage.Presigner, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		presigner: presigner,
		logger:    logger,
	}
}

// CreateUploadURL hands the client a presigned PUT URL so the image bytes go
// straight to S3.
func (h *UploadHandler) CreateUploadURL(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "CreateUploadURL")
	defer span.End()

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User must be authenticated."})
		return
	}

	if h.presigner == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AWS S3 is not configured. Set AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_REGION, AWS_BUCKET, AWS_BASE_PATH"})
		return
	}

	var req models.CreateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FileName == "" || req.ContentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileName and contentType are required."})
		return
	}

	key := h.presigner.ObjectKey(userID, req.FileName, time.Now())
	span.SetAttributes(attribute.String("s3.key", key))

	uploadURL, getURL, err := h.presigner.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL. Please try again later."})
		return
	}

	h.logger.Info("Presigned upload URL issued",
		zap.Int("user_id", userID),
		zap.String("key", key),
	)

	c.JSON(http.StatusOK, models.CreateUploadResponse{
		Success:   true,
		Key:       key,
		UploadURL: uploadURL,
		GetURL:    getURL,
		PublicURL: h.presigner.PublicURL(key),
	})
}
