package export

import (
	"quote-manager/core/catalog"
	"quote-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the export feature over the shared connections.
func NewFeature(db *gorm.DB, client storage.Client, bucket, draftPrefix, schema string, catalogClient catalog.Client, logger *zap.Logger) *Feature {
	store := NewRecordStore(db, client, bucket, draftPrefix, schema, logger)
	svc := NewService(store, catalogClient, logger)
	h := NewHandler(svc, &JSONAssembler{})
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "export"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}
