package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

// ResourceService manages the generated material teachers chose to keep.
type ResourceService struct {
	resources store.ResourceStore
	logger    *slog.Logger
}

// NewResourceService creates a ResourceService.
func NewResourceService(resources store.ResourceStore, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		resources: resources,
		logger:    logger.With("component", "resource_service"),
	}
}

// List returns the resources of ownerID, newest first.
func (s *ResourceService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	resources, err := s.resources.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// Save stores content under title for ownerID.
func (s *ResourceService) Save(
	ctx context.Context,
	ownerID uuid.UUID,
	title, resourceType, content string,
) (*domain.Resource, error) {
	resource, err := domain.NewResource(ownerID, title, resourceType, content)
	if err != nil {
		return nil, err
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to save resource: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("resource saved",
		"resource_id", resource.ID,
		"type", resource.Type,
		"content_length", len(content))
	return resource, nil
}

// Delete removes a resource of ownerID.
func (s *ResourceService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.resources.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}
