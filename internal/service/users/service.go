package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	userRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/user"
	"github.com/m04kA/SMC-LabReservation/internal/service/users/models"
)

// Service сервис учётных записей и сессий
type Service struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	bcryptCost int
	logger     Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, tokens TokenIssuer, bcryptCost int, logger Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register создает учётную запись заявителя и сразу открывает сессию.
// Роль администратора через регистрацию получить нельзя.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionResponse, error) {
	if err := validateRegister(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	user, err := s.create(ctx, req, domain.RoleRequester)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Register: created user id=%d username=%s", user.ID, user.Username)
	return s.session(user)
}

// EnsureAdmin создает учётную запись администратора, если её ещё нет
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	req := &models.RegisterRequest{Username: username, Password: password, FullName: "Administrator"}
	if err := validateRegister(req); err != nil {
		return err
	}

	user, err := s.create(ctx, req, domain.RoleAdmin)
	if err != nil {
		return err
	}

	s.logger.Info("EnsureAdmin: created admin id=%d username=%s", user.ID, user.Username)
	return nil
}

// Login проверяет пароль и выпускает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user id=%d signed in", user.ID)
	return s.session(user)
}

// Me возвращает данные пользователя текущей сессии
func (s *Service) Me(ctx context.Context, actor domain.Actor) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user id=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

// ListUsers возвращает всех пользователей. Доступно только администратору
func (s *Service) ListUsers(ctx context.Context, actor domain.Actor) (*models.UserListResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("ListUsers: user id=%d is not an admin", actor.ID)
		return nil, ErrAdminOnly
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrInternal, err)
	}

	resp := models.UserListResponse{Users: make([]models.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, models.FromDomainUser(u))
	}
	return &resp, nil
}

func (s *Service) create(ctx context.Context, req *models.RegisterRequest, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: create - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username:     strings.TrimSpace(req.Username),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("create: repository error: %v", err)
		return nil, fmt.Errorf("%w: create - repository error: %v", ErrInternal, err)
	}

	return user, nil
}

func (s *Service) session(user *domain.User) (*models.SessionResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("session: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, err
	}

	return &models.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(user),
	}, nil
}

func validateRegister(req *models.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return domain.NewValidationError("username", "is required")
	}
	if len(username) > domain.MaxUsernameLength {
		return domain.NewValidationError("username", fmt.Sprintf("must be at most %d characters", domain.MaxUsernameLength))
	}
	if len(req.Password) < domain.MinPasswordLength {
		return domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength))
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.NewValidationError("email", "is not a valid address")
		}
	}
	return nil
}
