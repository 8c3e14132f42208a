package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
	"github.com/attendlink/attendlink/internal/pkg/auth"
	"github.com/attendlink/attendlink/internal/pkg/logger"
)

// AuthService handles registration, login and password reset.
type AuthService struct {
	tx            TxRunner
	users         UserStore
	students      StudentStore
	faculty       FacultyStore
	settings      SettingsStore
	resetTokens   ResetTokenStore
	tokens        TokenIssuer
	resetTokenTTL time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(tx TxRunner, users UserStore, students StudentStore, faculty FacultyStore,
	settings SettingsStore, resetTokens ResetTokenStore, tokens TokenIssuer, resetTokenTTL time.Duration) *AuthService {
	return &AuthService{
		tx:            tx,
		users:         users,
		students:      students,
		faculty:       faculty,
		settings:      settings,
		resetTokens:   resetTokens,
		tokens:        tokens,
		resetTokenTTL: resetTokenTTL,
	}
}

// profileSuffix derives the identifier suffix from the first 8 hex
// characters of the user's ID.
func profileSuffix(userID uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(userID.String(), "-", "")[:8])
}

// Register creates the user account together with its role profile and
// default settings in one transaction.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.RoleType(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("unknown role: " + req.Role)
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		Role:         role,
		FullName:     req.FullName,
		Phone:        req.Phone,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}

		switch role {
		case models.RoleStudent:
			student := &models.Student{
				UserID:         user.ID,
				RollNumber:     "STU" + profileSuffix(user.ID),
				Department:     "Not Set",
				Semester:       1,
				BatchYear:      time.Now().Year(),
				EnrollmentDate: time.Now(),
			}
			if err := s.students.CreateTx(ctx, tx, student); err != nil {
				return err
			}
		case models.RoleFaculty:
			faculty := &models.Faculty{
				UserID:      user.ID,
				EmployeeID:  "FAC" + profileSuffix(user.ID),
				Department:  "Not Set",
				Designation: "Lecturer",
			}
			if err := s.faculty.CreateTx(ctx, tx, faculty); err != nil {
				return err
			}
		}

		return s.settings.CreateTx(ctx, tx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// Me returns the current user with its role profile attached.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{User: user}

	switch user.Role {
	case models.RoleStudent:
		student, err := s.students.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		resp.Student = student
	case models.RoleFaculty:
		faculty, err := s.faculty.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, err
		}
		resp.Faculty = faculty
	}

	return resp, nil
}

// ForgotPassword issues a single-use reset token. An unknown email
// produces no token and no error, so the endpoint does not leak which
// addresses are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
	}
	if err := s.resetTokens.Create(ctx, token); err != nil {
		return "", err
	}

	logger.Info().Str("email", user.Email).Msg("Password reset token issued")
	return token.Token, nil
}

// ResetPassword consumes a reset token and updates the password. The
// token stamp and the password update commit together or not at all.
func (s *AuthService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	token, err := s.resetTokens.GetByToken(ctx, tokenValue)
	if err != nil {
		return err
	}

	if token.UsedAt != nil {
		return apperrors.ErrResetTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrResetTokenInvalid
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.resetTokens.MarkUsedTx(ctx, tx, token.ID); err != nil {
			return err
		}
		return s.users.UpdatePasswordTx(ctx, tx, token.UserID, passwordHash)
	})
}
