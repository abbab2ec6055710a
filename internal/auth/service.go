package auth

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
)

// Roles understood by the API.
const (
	RoleAdmin    = "admin"
	RoleBilling  = "billing"
	RoleOperator = "operator"
)

var knownRoles = []string{RoleAdmin, RoleBilling, RoleOperator}

const minPasswordLen = 8

type userQueries interface {
	CreateUser(ctx context.Context, arg dbgen.CreateUserParams) (dbgen.User, error)
	GetUserByEmail(ctx context.Context, lower string) (dbgen.User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (dbgen.GetUserByIDRow, error)
}

// Config configures the auth service. Zero values pick the defaults noted
// on each field.
type Config struct {
	Queries        userQueries
	Secret         string
	AccessTokenTTL time.Duration // 12h
	Issuer         string        // "shipledger"
	Audience       string        // "shipledger-console"
	ClockSkew      time.Duration
}

// Service verifies staff credentials and issues access tokens.
type Service struct {
	queries userQueries
	tokens  tokenCodec
	now     func() time.Time
}

// User is the public view of a staff account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult is the body returned by POST /auth/login.
type LoginResult struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"access_token"`
	AccessExpiry time.Time `json:"access_token_expires_at"`
}

// Claims is what a verified access token asserts.
type Claims struct {
	UserID string
	Roles  []string
}

// NewService validates cfg and builds the token codec.
func NewService(cfg Config) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("auth: queries is required")
	}
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	tokens, err := newTokenCodec([]byte(secret),
		cmp.Or(strings.TrimSpace(cfg.Issuer), "shipledger"),
		cmp.Or(strings.TrimSpace(cfg.Audience), "shipledger-console"),
		ttl, max(cfg.ClockSkew, 0))
	if err != nil {
		return nil, err
	}
	return &Service{queries: cfg.Queries, tokens: tokens, now: time.Now}, nil
}

// WithNow overrides the clock used for issuing and verifying tokens.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateUser provisions a staff account. Only the seed command calls it;
// there is no self-registration endpoint.
func (s *Service) CreateUser(ctx context.Context, name, email, password string, roles []string) (User, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	switch {
	case name == "":
		return User{}, validationError("name is required")
	case email == "":
		return User{}, validationError("email is required")
	case len(password) < minPasswordLen:
		return User{}, validationError(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if i := slices.IndexFunc(roles, func(r string) bool { return !slices.Contains(knownRoles, r) }); i >= 0 {
		return User{}, validationError("unknown role " + roles[i])
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	row, err := s.queries.CreateUser(ctx, dbgen.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
	})
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		return User{}, common.NewAppError("EMAIL_ALREADY_USED", "email is already registered", http.StatusConflict, err)
	case err != nil:
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return newUser(row.ID, row.Name, row.Email, row.Roles, row.CreatedAt), nil
}

// Login checks the password and returns a signed access token. Unknown
// emails and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, errInvalidCredentials
	}
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, errInvalidCredentials
	}
	if ok, err := argon2id.ComparePasswordAndHash(password, row.PasswordHash); err != nil || !ok {
		return LoginResult{}, errInvalidCredentials
	}

	user := newUser(row.ID, row.Name, row.Email, row.Roles, row.CreatedAt)
	if user.ID == "" {
		return LoginResult{}, errors.New("auth: user row without id")
	}
	token, exp, err := s.tokens.issue(s.now(), user.ID, user.Roles)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign access token: %w", err)
	}
	return LoginResult{User: user, AccessToken: token, AccessExpiry: exp}, nil
}

// Me loads the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	id, err := common.ToUUID(userID)
	if err != nil {
		return User{}, errUnauthorized
	}
	row, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		return User{}, errUnauthorized
	}
	return newUser(row.ID, row.Name, row.Email, row.Roles, row.CreatedAt), nil
}

// ParseAccessToken verifies token and returns its claims.
func (s *Service) ParseAccessToken(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, common.NewAppError("UNAUTHORIZED", "missing token", http.StatusUnauthorized, nil)
	}
	claims, err := s.tokens.verify(token, s.now())
	if err != nil {
		return Claims{}, common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	return claims, nil
}

var (
	errInvalidCredentials = common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, nil)
	errUnauthorized       = common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, nil)
)

func validationError(msg string) error {
	return common.NewAppError("VALIDATION_ERROR", msg, http.StatusBadRequest, nil)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newUser(id pgtype.UUID, name, email string, roles []string, created pgtype.Timestamptz) User {
	return User{
		ID:        common.UUIDString(id),
		Name:      name,
		Email:     email,
		Roles:     roles,
		CreatedAt: common.TimeValue(created),
	}
}
