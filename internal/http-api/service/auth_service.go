package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"
	"artshare/internal/http-api/session"
	"artshare/internal/middleware/auth"

	"github.com/go-playground/validator/v10"
)

// SessionManager is the part of session.Manager the auth service needs.
type SessionManager interface {
	Start(ctx context.Context, account *models.Account) (string, *session.Session, error)
	Lookup(ctx context.Context, token string) (*session.Session, error)
	End(ctx context.Context, token string) error
}

type AuthService interface {
	Register(ctx context.Context, in dto.RegisterInput) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (token string, principal *Principal, err error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*Principal, error)
}

type authService struct {
	accounts repository.AccountRepository
	sessions SessionManager
	validate *validator.Validate
	log      *slog.Logger
}

func NewAuthService(accounts repository.AccountRepository, sessions SessionManager, log *slog.Logger) AuthService {
	return &authService{
		accounts: accounts,
		sessions: sessions,
		validate: validator.New(),
		log:      log,
	}
}

// dummyHash is compared against when the username is unknown, so a miss
// costs one bcrypt comparison like a hit does.
var dummyHash = sync.OnceValue(func() string {
	hash, err := auth.HashPassword("artshare-timing-equaliser")
	if err != nil {
		panic(fmt.Sprintf("hash dummy password: %v", err))
	}
	return hash
})

// Register creates an account with a bcrypt hash of the password.
func (s *authService) Register(ctx context.Context, in dto.RegisterInput) (*models.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	role, err := s.checkRegistration(in)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hashedPassword,
		FirstName: in.FirstName,
		Surname:   in.Surname,
		Role:      role,
	}

	// the unique indexes decide, a pre-check would race
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("account registered", "account_id", account.ID, "username", account.Username, "role", account.Role)
	return account, nil
}

func (s *authService) checkRegistration(in dto.RegisterInput) (models.Role, error) {
	required := []struct{ field, value string }{
		{"first_name", in.FirstName},
		{"surname", in.Surname},
		{"username", in.Username},
		{"email", in.Email},
		{"password", in.Password},
	}
	for _, r := range required {
		if r.value == "" {
			return "", invalid(r.field, "is required")
		}
	}

	if err := s.validate.Var(in.Username, "max=50"); err != nil {
		return "", invalid("username", "must be at most 50 characters")
	}
	if err := s.validate.Var(in.Email, "email,max=254"); err != nil {
		return "", invalid("email", "is not a valid email address")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return "", invalid("password", "must be at most 72 bytes")
	}

	role := models.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	switch role {
	case "":
		return models.RoleEnthusiast, nil
	case models.RoleArtist, models.RoleEnthusiast:
		return role, nil
	default:
		return "", invalid("role", "must be artist or enthusiast")
	}
}

// Authenticate checks the credentials and starts a session.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, *Principal, error) {
	account, err := s.accounts.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		auth.VerifyPassword(dummyHash(), password)
		if !isNotFound(err) {
			return "", nil, fmt.Errorf("find account: %w", err)
		}
		return "", nil, ErrAuthentication
	}

	if err := auth.VerifyPassword(account.Password, password); err != nil {
		return "", nil, ErrAuthentication
	}

	token, sess, err := s.sessions.Start(ctx, account)
	if err != nil {
		return "", nil, fmt.Errorf("start session: %w", err)
	}

	return token, principalFromSession(sess), nil
}

// Logout ends the session behind token. It never fails for unknown tokens.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.End(ctx, token); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Resolve maps a cookie token to the caller.
func (s *authService) Resolve(ctx context.Context, token string) (*Principal, error) {
	sess, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrNotFound) {
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	return principalFromSession(sess), nil
}

func principalFromSession(sess *session.Session) *Principal {
	return &Principal{
		AccountID: sess.AccountID,
		Username:  sess.Username,
		Role:      sess.Role,
	}
}
