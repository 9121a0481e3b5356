package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/usecase"
)

var tracer = otel.Tracer("auth")

const sessionKeyPrefix = "session:"

// AuthService is the identity collaborator: it trades credentials for
// opaque session tokens kept in Redis and resolves tokens back to
// users. The rest of the system only ever sees an explicit viewer id.
type AuthService struct {
	rdb   *redis.Client
	users usecase.UserRepository
	ttl   time.Duration
}

func NewAuthService(rdb *redis.Client, users usecase.UserRepository, ttl time.Duration) *AuthService {
	return &AuthService{
		rdb:   rdb,
		users: users,
		ttl:   ttl,
	}
}

// Login verifies the credentials and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return "", domain.ValidationError{Message: "unable to log in with provided credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		span.RecordError(err)
		return "", domain.ValidationError{Message: "unable to log in with provided credentials"}
	}

	token := uuid.NewString()
	err = s.rdb.Set(ctx, sessionKeyPrefix+token, strconv.FormatInt(user.ID, 10), s.ttl).Err()
	if err != nil {
		span.RecordError(err)
		return "", pkgerrors.Wrap(err, "AuthService.Login: session store failed")
	}

	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Logout")
	defer span.End()

	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// Resolve maps a session token to its user. An unknown or expired
// token is a NotFoundError.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Resolve")
	defer span.End()

	value, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return domain.User{}, domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		span.RecordError(err)
		return domain.User{}, pkgerrors.Wrap(err, "AuthService.Resolve: session lookup failed")
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return domain.User{}, domain.NotFoundError{Resource: "session"}
	}

	return s.users.Get(ctx, userID)
}
