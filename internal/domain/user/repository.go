package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetBySetupToken(ctx context.Context, token string) (User, error)
	SetPassword(ctx context.Context, id string, passwordHash string) error
}
