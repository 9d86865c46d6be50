package reconcile

import (
	"tracking-auditor/core/shopify"
	"tracking-auditor/core/storage"
	"tracking-auditor/feature/tracking"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Reconcile feature.
func NewFeature(source shopify.Source, store tracking.Store, archive storage.Client, bucket string, creds shopify.Credentials, logger *zap.Logger) *Feature {
	svc := NewService(source, store, archive, bucket, creds, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "reconcile"
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
