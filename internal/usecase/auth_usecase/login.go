package auth

import (
	"context"
	"errors"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/validator"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	User model.UserProfile
}

// メールまたはパスワードが違う（どちらかは区別しない）
var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, IssuedToken, error) {
	var out LoginOutput
	var tok IssuedToken

	email := NormalizeEmail(in.Email)
	if err := validator.ValidateLogin(email, in.Password); err != nil {
		return out, tok, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, tok, ErrInvalidCredentials
		}
		return out, tok, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, tok, ErrInvalidCredentials
	}

	tok.Token, tok.ExpiresAt, err = u.issuer.Issue(user.ID, user.TokenVersion, u.clock.Now())
	if err != nil {
		return out, tok, err
	}

	//出力（passwordは返さない）
	out.User = user.Profile()
	return out, tok, nil
}
