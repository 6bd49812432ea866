package api

import (
	"context"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/service"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

// AuthService is the part of service.AuthService used by AuthHandler.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

// ClassService is the part of service.ClassService used by ClassHandler.
type ClassService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error)
	Create(ctx context.Context, ownerID uuid.UUID, in service.ClassInput) (*domain.Class, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in service.ClassInput) (*domain.Class, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ResourceService is the part of service.ResourceService used by ResourceHandler.
type ResourceService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error)
	Save(ctx context.Context, ownerID uuid.UUID, title, resourceType, content string) (*domain.Resource, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// GenerationService is the part of service.GenerationService used by
// GenerationHandler.
type GenerationService interface {
	Generate(
		ctx context.Context,
		userID uuid.UUID,
		req generation.Request,
		classID *uuid.UUID,
	) (*generation.Result, error)
}

// AdminService is the part of service.AdminService used by AdminHandler.
type AdminService interface {
	CreateTeacher(ctx context.Context, actorID uuid.UUID, email, fullName, password string) (*domain.User, error)
	ListTeachers(ctx context.Context, search string, page store.Page) ([]*domain.User, error)
	DeleteTeacher(ctx context.Context, actorID, id uuid.UUID) error
	Analytics(ctx context.Context) ([]domain.TeacherUsage, error)
	CreateOrganization(
		ctx context.Context,
		actorID uuid.UUID,
		name, contact string,
		seats int,
		expiresAt time.Time,
	) (*domain.OrganizationLicense, error)
	ListOrganizations(ctx context.Context, page store.Page) ([]domain.OrganizationLicense, error)
	RecordPayment(ctx context.Context, actorID uuid.UUID, in service.PaymentInput) (*domain.Payment, error)
	ListPayments(ctx context.Context, page store.Page) ([]domain.PaymentView, error)
	AuditLog(ctx context.Context, page store.Page) ([]*domain.AuditEntry, error)
}
