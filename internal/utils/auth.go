package utils

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sarunks7/storely-backend/internal/data/repos"
	types "github.com/sarunks7/storely-backend/internal/domain"
)

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given, cannot proceed with registration")
	}
	if user.Email == "" {
		return fmt.Errorf("an email is required to register")
	}
	emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check user email")
	}
	if emailExists {
		return fmt.Errorf("email is already in use")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}
	if user.FirstName == "" {
		return fmt.Errorf("a first name is required to register")
	}
	if user.LastName == "" {
		return fmt.Errorf("a last name is required to register")
	}
	return nil
}

func ValidateLogin(email, password string) error {
	if email == "" {
		return fmt.Errorf("email is required to login")
	}
	if password == "" {
		return fmt.Errorf("password is required to login")
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password")
	}
	user.Password = string(hashedPassword)
	return nil
}

func NormalizeUserFields(user *types.User) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Password = strings.TrimSpace(user.Password)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
}
