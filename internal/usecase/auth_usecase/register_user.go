package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/validator"
)

// 会員登録の入力
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.UserProfile
}

// handlerがCookieに詰めるために必要な値
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

var (
	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// JWTを発行する約束
type TokenIssuer interface {
	Issue(userID int64, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, IssuedToken, error) {
	var out RegisterUserOutput
	var tok IssuedToken

	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)

	// 入力チェック
	if err := validator.ValidateRegister(name, email, in.Password); err != nil {
		return out, tok, err
	}

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, tok, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return out, tok, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, tok, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		IsAdmin:      false,
		TokenVersion: 0,
	}

	// DBへ保存（同時登録はunique制約で弾く）
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return out, tok, ErrEmailAlreadyExists
		}
		return out, tok, err
	}

	tok.Token, tok.ExpiresAt, err = u.issuer.Issue(user.ID, user.TokenVersion, u.clock.Now())
	if err != nil {
		return out, tok, err
	}

	out.User = user.Profile()
	return out, tok, nil
}

// 比較用にemailを揃える
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
