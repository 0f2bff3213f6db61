package service

import (
	"context"
	"errors"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/auth"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/model"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.CredentialsRequest) error
	Login(ctx context.Context, req dto.CredentialsRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authService struct {
	repo       repository.UserRepository
	issuer     *auth.Issuer
	bcryptCost int
}

func NewAuthService(repo repository.UserRepository, issuer *auth.Issuer, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{repo: repo, issuer: issuer, bcryptCost: bcryptCost}
}

var errBadCredentials = newError(ErrUnauthorized, "Invalid username or password")

func (s *authService) Register(ctx context.Context, req dto.CredentialsRequest) error {
	_, err := s.repo.FindByUsername(ctx, req.Username)
	if err == nil {
		return newError(ErrConflict, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return err
	}
	user := &model.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return newError(ErrConflict, "User already exists")
		}
		return err
	}
	return nil
}

func (s *authService) Login(ctx context.Context, req dto.CredentialsRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errBadCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrUnauthorized, "Invalid or expired token")
		}
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID, Username: user.Username}, nil
}
