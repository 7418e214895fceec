package services

import (
	goerrors "errors"
	"fmt"

	"github.com/samber/lo"

	"pairchat/auth"
	"pairchat/errors"
	"pairchat/repositories"
)

type IAccountService interface {
	Register(handle, secret string) error
	Login(handle, secret string) (string, error)
	ListOthers(handle string) ([]string, error)
}

type AccountService struct {
	userRepository repositories.IUserRepository
}

func NewAccountService(repo repositories.IUserRepository) IAccountService {
	return &AccountService{userRepository: repo}
}

func (s *AccountService) Register(handle, secret string) error {
	// 1. Validate business rules (handle length, secret presence)
	// before any expensive cryptographic operation.
	if err := auth.ValidateCredentials(auth.Credentials{Handle: handle, Secret: secret}); err != nil {
		return err
	}

	// 2. Derive the argon2id digest in the service layer to keep the
	// repository unaware of plaintext secrets.
	digest, err := auth.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist; propagates ErrHandleTaken if the handle is in use.
	return s.userRepository.CreateUser(handle, digest)
}

// Login checks the secret against the stored digest and returns the handle.
// Unknown handle and wrong secret collapse into the same error to prevent
// user enumeration; a store failure is a different condition and surfaces
// as-is, like on every other path.
func (s *AccountService) Login(handle, secret string) (string, error) {
	if handle == "" || secret == "" {
		return "", fmt.Errorf("%w: handle and secret are required", errors.ErrValidation)
	}

	user, err := s.userRepository.GetUserByHandle(handle)
	if goerrors.Is(err, errors.ErrUnknownHandle) {
		return "", errors.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("credential lookup failed: %w", err)
	}

	match, err := auth.VerifySecret(secret, user.SecretDigest)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	return user.Handle, nil
}

// ListOthers returns every registered handle except the given one, in the
// repository's stable order.
func (s *AccountService) ListOthers(handle string) ([]string, error) {
	if handle == "" {
		return nil, fmt.Errorf("%w: handle is required", errors.ErrValidation)
	}

	handles, err := s.userRepository.ListHandles()
	if err != nil {
		return nil, err
	}

	return lo.Filter(handles, func(h string, _ int) bool {
		return h != handle
	}), nil
}
