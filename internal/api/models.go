package api

import (
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/google/uuid"
)

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// ChangePasswordRequest is the payload of PUT /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Name         string `json:"name"          validate:"required,max=100"`
	Grade        int    `json:"grade"         validate:"min=1,max=12"`
	StudentCount int    `json:"student_count" validate:"min=0,max=200"`
	Description  string `json:"description"   validate:"max=2000"`
}

// MathRequest is the payload of POST /api/generate/math. Counts are
// pointers so that a missing count is rejected while an explicit 0 is kept.
type MathRequest struct {
	Topic      string     `json:"topic"      validate:"required,max=200"`
	Count      *int       `json:"count"      validate:"required,min=0,max=50"`
	Difficulty string     `json:"difficulty" validate:"max=50"`
	Grade      string     `json:"grade"      validate:"max=20"`
	Language   string     `json:"language"   validate:"max=30"`
	ClassID    *uuid.UUID `json:"class_id"`
}

// CrosswordRequest is the payload of POST /api/generate/crossword.
type CrosswordRequest struct {
	Topic     string     `json:"topic"      validate:"required,max=200"`
	WordCount *int       `json:"word_count" validate:"required,min=0,max=50"`
	Language  string     `json:"language"   validate:"max=30"`
	Grade     string     `json:"grade"      validate:"max=20"`
	ClassID   *uuid.UUID `json:"class_id"`
}

// QuizRequest is the payload of POST /api/generate/quiz.
type QuizRequest struct {
	Topic      string     `json:"topic"      validate:"required,max=200"`
	Count      *int       `json:"count"      validate:"required,min=0,max=50"`
	Difficulty string     `json:"difficulty" validate:"max=50"`
	Grade      string     `json:"grade"      validate:"max=20"`
	Language   string     `json:"language"   validate:"max=30"`
	ClassID    *uuid.UUID `json:"class_id"`
}

// AssignmentRequest is the payload of POST /api/generate/assignment.
type AssignmentRequest struct {
	Subject    string     `json:"subject"    validate:"required,max=100"`
	Topic      string     `json:"topic"      validate:"required,max=200"`
	Count      *int       `json:"count"      validate:"required,min=0,max=50"`
	Difficulty string     `json:"difficulty" validate:"max=50"`
	Grade      string     `json:"grade"      validate:"max=20"`
	Language   string     `json:"language"   validate:"max=30"`
	ClassID    *uuid.UUID `json:"class_id"`
}

// JeopardyRequest is the payload of POST /api/generate/jeopardy.
type JeopardyRequest struct {
	Topic      string     `json:"topic"      validate:"required,max=200"`
	Categories int        `json:"categories" validate:"min=1,max=6"`
	Difficulty string     `json:"difficulty" validate:"max=50"`
	Grade      string     `json:"grade"      validate:"max=20"`
	Language   string     `json:"language"   validate:"max=30"`
	ClassID    *uuid.UUID `json:"class_id"`
}

// StorybookRequest is the payload of POST /api/library/generate.
type StorybookRequest struct {
	Title    string `json:"title"     validate:"required,max=200"`
	Topic    string `json:"topic"     validate:"required,max=500"`
	AgeGroup string `json:"age_group" validate:"max=20"`
	Language string `json:"language"  validate:"max=30"`
	Genre    string `json:"genre"     validate:"max=50"`
}

// ResourceRequest is the payload of POST /api/resources. Content is the
// client-side JSON document, stored as is.
type ResourceRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Type    string `json:"type"    validate:"required,max=50"`
	Content string `json:"content" validate:"required"`
}

// CreateTeacherRequest is the payload of POST /api/admin/teachers.
type CreateTeacherRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

// OrganizationRequest is the payload of POST /api/admin/organizations.
type OrganizationRequest struct {
	Name      string    `json:"name"       validate:"required,max=200"`
	Contact   string    `json:"contact"    validate:"max=200"`
	Seats     int       `json:"seats"      validate:"min=1"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// PaymentRequest is the payload of POST /api/admin/payments.
type PaymentRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	AmountCents    int64     `json:"amount_cents"    validate:"min=1"`
	Currency       string    `json:"currency"        validate:"required,len=3"`
	Method         string    `json:"method"          validate:"max=50"`
	Period         string    `json:"period"          validate:"max=50"`
	Status         string    `json:"status"          validate:"required,oneof=paid pending failed"`
}
