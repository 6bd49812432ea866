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

// ClassInput carries the editable fields of a class.
type ClassInput struct {
	Name         string
	Grade        int
	StudentCount int
	Description  string
}

// ClassService manages the classes of a teacher. Every operation is scoped to
// the owner; another teacher's class behaves as if it did not exist.
type ClassService struct {
	classes store.ClassStore
	logger  *slog.Logger
}

// NewClassService creates a ClassService.
func NewClassService(classes store.ClassStore, logger *slog.Logger) *ClassService {
	return &ClassService{
		classes: classes,
		logger:  logger.With("component", "class_service"),
	}
}

// List returns the classes owned by ownerID.
func (s *ClassService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error) {
	classes, err := s.classes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

// Create validates in and stores a new class for ownerID.
func (s *ClassService) Create(ctx context.Context, ownerID uuid.UUID, in ClassInput) (*domain.Class, error) {
	class, err := domain.NewClass(ownerID, in.Name, in.Grade, in.StudentCount, in.Description)
	if err != nil {
		return nil, err
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("class created",
		"class_id", class.ID,
		"owner_id", ownerID)
	return class, nil
}

// Update replaces the editable fields of a class owned by ownerID.
func (s *ClassService) Update(ctx context.Context, ownerID, id uuid.UUID, in ClassInput) (*domain.Class, error) {
	class, err := s.classes.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load class: %w", err)
	}
	if err := class.Update(in.Name, in.Grade, in.StudentCount, in.Description); err != nil {
		return nil, err
	}
	if err := s.classes.Update(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}
	return class, nil
}

// Delete removes a class owned by ownerID.
func (s *ClassService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.classes.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("class deleted",
		"class_id", id,
		"owner_id", ownerID)
	return nil
}

// Context returns the description of a class owned by ownerID, which is
// inserted into generation prompts. A missing class yields an empty context.
func (s *ClassService) Context(ctx context.Context, ownerID uuid.UUID, classID *uuid.UUID) (string, error) {
	if classID == nil || *classID == uuid.Nil {
		return "", nil
	}
	class, err := s.classes.GetByID(ctx, ownerID, *classID)
	if err != nil {
		if store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Warn("class for generation context not found",
				"class_id", *classID)
			return "", nil
		}
		return "", fmt.Errorf("failed to load class context: %w", err)
	}
	return class.Description, nil
}
