package usecase

import (
	"context"
	"errors"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/pkg/jwt"
	"parking-gateway/internal/pkg/password"
	"parking-gateway/internal/usecase/readmodel"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepository interface {
	Create(ctx context.Context, ex db.Executor, username, email, passwordHash string, vehicleNumber *string) (int64, error)
	FindByEmail(ctx context.Context, ex db.Executor, email string) (*readmodel.UserRM, string, error)
	FindByID(ctx context.Context, ex db.Executor, id int64) (*readmodel.UserRM, error)
}

type RegisterParams struct {
	Username      string
	Email         string
	Password      string
	VehicleNumber *string
}

type AuthUseCase interface {
	Register(ctx context.Context, p RegisterParams) (int64, error)
	Login(ctx context.Context, email, plainPassword string) (string, *readmodel.UserRM, error)
	GetProfile(ctx context.Context, userID int64) (*readmodel.UserRM, error)
}

type authUseCaseImpl struct {
	ex         db.Executor
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(ex db.Executor, userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		ex:         ex,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, p RegisterParams) (int64, error) {
	hash, err := password.Hash(p.Password)
	if err != nil {
		return 0, err
	}

	id, err := a.userRepo.Create(ctx, a.ex, p.Username, p.Email, hash, p.VehicleNumber)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *readmodel.UserRM, error) {
	user, hash, err := a.userRepo.FindByEmail(ctx, a.ex, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := password.Verify(hash, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (a *authUseCaseImpl) GetProfile(ctx context.Context, userID int64) (*readmodel.UserRM, error) {
	user, err := a.userRepo.FindByID(ctx, a.ex, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
