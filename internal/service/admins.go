package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"portfolio-api/internal/apperrors"
	"portfolio-api/internal/auth"
	"portfolio-api/internal/models"
	"portfolio-api/internal/repository"

	"go.uber.org/zap"
)

// AdminService manages admin accounts. The root account is hidden from the
// list and cannot be changed or removed through it.
type AdminService struct {
	repo *repository.AdminRepository
	root string
	log  *zap.SugaredLogger
}

func NewAdminService(repo *repository.AdminRepository, rootAccount string, log *zap.SugaredLogger) *AdminService {
	return &AdminService{repo: repo, root: rootAccount, log: log.Named("admins")}
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.repo.List(ctx, s.root)
}

func (s *AdminService) Add(ctx context.Context, account, password string) error {
	account = strings.TrimSpace(account)
	if account == "" || password == "" {
		return apperrors.Validation("Account and password are required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.repo.Create(ctx, &models.Admin{Account: account, Password: hash}); err != nil {
		return err
	}
	s.log.Infow("admin added", "account", account)
	return nil
}

func (s *AdminService) ChangePassword(ctx context.Context, account, password string) error {
	if password == "" {
		return apperrors.Validation("Password is required")
	}
	if s.isRoot(account) {
		return apperrors.NotFound("Admin")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.Internal(err)
	}
	n, err := s.repo.UpdatePassword(ctx, account, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("Admin")
	}
	s.log.Infow("admin password changed", "account", account)
	return nil
}

func (s *AdminService) Delete(ctx context.Context, account string) error {
	if s.isRoot(account) {
		return apperrors.NotFound("Admin")
	}
	n, err := s.repo.Delete(ctx, account)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("Admin")
	}
	s.log.Infow("admin deleted", "account", account)
	return nil
}

// EnsureRoot creates the root account with password when it does not exist.
// It does nothing when no root account is configured.
func (s *AdminService) EnsureRoot(ctx context.Context, password string) error {
	if s.root == "" || password == "" {
		return nil
	}
	_, err := s.repo.Get(ctx, s.root)
	if err == nil {
		return nil
	}
	if !apperrors.IsNotFound(err) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.repo.Create(ctx, &models.Admin{Account: s.root, Password: hash}); err != nil && !apperrors.IsDuplicate(err) {
		return err
	}
	s.log.Infow("root admin created", "account", s.root)
	return nil
}

func (s *AdminService) isRoot(account string) bool {
	return s.root != "" && account == s.root
}

// AuthService checks admin credentials and issues session tokens.
type AuthService struct {
	repo   *repository.AdminRepository
	tokens *auth.Tokens
	root   string
	log    *zap.SugaredLogger
}

func NewAuthService(repo *repository.AdminRepository, tokens *auth.Tokens, rootAccount string, log *zap.SugaredLogger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, root: rootAccount, log: log.Named("auth")}
}

// Session is a successful login.
type Session struct {
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

var errInvalidLogin = apperrors.Unauthorized("Invalid account or password")

func (s *AuthService) Login(ctx context.Context, account, password string) (*Session, error) {
	if account == "" || password == "" {
		return nil, apperrors.Validation("Please provide both account and password")
	}

	admin, err := s.repo.Get(ctx, account)
	if apperrors.IsNotFound(err) {
		s.log.Warnw("login for unknown account", "account", account)
		return nil, errInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if !s.matches(admin, password) {
		s.log.Warnw("login with wrong password", "account", account)
		return nil, errInvalidLogin
	}

	token, exp, err := s.tokens.Issue(account)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.log.Infow("login", "account", account)
	return &Session{Account: account, Token: token, ExpiresAt: exp}, nil
}

// matches compares the root account's legacy plaintext password as is and
// every other password against its bcrypt hash.
func (s *AuthService) matches(admin *models.Admin, password string) bool {
	if admin.Account == s.root && !auth.IsHash(admin.Password) {
		return subtle.ConstantTimeCompare([]byte(admin.Password), []byte(password)) == 1
	}
	return auth.CheckPasswordHash(password, admin.Password)
}

var errInvalidSession = apperrors.Unauthorized("Invalid or expired session")

// Verify returns the account a session token was issued to. The account
// must still exist.
func (s *AuthService) Verify(ctx context.Context, token string) (string, error) {
	account, err := s.tokens.Verify(token)
	if err != nil {
		return "", errInvalidSession
	}
	if _, err := s.repo.Get(ctx, account); err != nil {
		if apperrors.IsNotFound(err) {
			s.log.Warnw("session for removed account", "account", account)
			return "", errInvalidSession
		}
		return "", err
	}
	return account, nil
}
