package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	auth "shopapi/internal/usecase/auth_usecase"
	"shopapi/internal/validator"
)

type UserUsecase struct {
	users  repo.UserRepository
	hasher auth.PasswordHasher
	issuer auth.TokenIssuer
	clock  auth.Clock
}

// DI
func NewUserUsecase(users repo.UserRepository, hasher auth.PasswordHasher, issuer auth.TokenIssuer, clock auth.Clock) *UserUsecase {
	return &UserUsecase{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		clock:  clock,
	}
}

// 空欄の項目は変更しない
type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
}

type UpdateProfileOutput struct {
	User model.UserProfile
	//パスワードを変えたときだけ再発行する
	Token *auth.IssuedToken
}

type AdminUpdateUserInput struct {
	Name    string
	Email   string
	IsAdmin *bool
}

func (u *UserUsecase) findUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, dbError(err)
	}
	return user, nil
}

// email変更時の重複チェック（自分自身は除く）
func (u *UserUsecase) changeEmail(ctx context.Context, user *model.User, email string) error {
	email = auth.NormalizeEmail(email)
	if email == "" || email == user.Email {
		return nil
	}

	other, err := u.users.FindByEmail(ctx, email)
	if err == nil && other != nil && other.ID != user.ID {
		return NewHTTPError(http.StatusBadRequest, "User already exists")
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return dbError(err)
	}

	user.Email = email
	return nil
}

func (u *UserUsecase) save(ctx context.Context, user *model.User) error {
	err := u.users.Update(ctx, user)
	if errors.Is(err, repo.ErrDuplicate) {
		return NewHTTPError(http.StatusBadRequest, "User already exists")
	}
	if err != nil {
		return dbError(err)
	}
	return nil
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (model.UserProfile, error) {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UpdateProfileOutput, error) {
	var out UpdateProfileOutput

	if err := validator.ValidateProfileUpdate(strings.TrimSpace(in.Email), in.Password); err != nil {
		return out, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.findUser(ctx, userID)
	if err != nil {
		return out, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if err := u.changeEmail(ctx, user, in.Email); err != nil {
		return out, err
	}

	// パスワード変更 => 古いトークンを無効にして再発行
	if in.Password != "" {
		hashed, err := u.hasher.Hash(in.Password)
		if err != nil {
			return out, WrapHTTPError(http.StatusInternalServerError, "internal error", err)
		}
		user.PasswordHash = hashed
		user.TokenVersion++
	}

	if err := u.save(ctx, user); err != nil {
		return out, err
	}

	if in.Password != "" {
		var tok auth.IssuedToken
		tok.Token, tok.ExpiresAt, err = u.issuer.Issue(user.ID, user.TokenVersion, u.clock.Now())
		if err != nil {
			return out, WrapHTTPError(http.StatusInternalServerError, "internal error", err)
		}
		out.Token = &tok
	}

	out.User = user.Profile()
	return out, nil
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return []model.UserProfile{}, dbError(err)
	}

	out := make([]model.UserProfile, 0, len(users))
	for _, user := range users {
		out = append(out, user.Profile())
	}
	return out, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, userID int64) (model.UserProfile, error) {
	return u.GetProfile(ctx, userID)
}

func (u *UserUsecase) AdminUpdateUser(ctx context.Context, userID int64, in AdminUpdateUserInput) (model.UserProfile, error) {
	if email := strings.TrimSpace(in.Email); email != "" {
		if err := validator.ValidateEmail(email); err != nil {
			return model.UserProfile{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	user, err := u.findUser(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if err := u.changeEmail(ctx, user, in.Email); err != nil {
		return model.UserProfile{}, err
	}

	// 権限が変わったら古いトークンは使えなくする
	if in.IsAdmin != nil && *in.IsAdmin != user.IsAdmin {
		user.IsAdmin = *in.IsAdmin
		user.TokenVersion++
	}

	if err := u.save(ctx, user); err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

// 管理者ユーザーは削除できない
func (u *UserUsecase) DeleteUser(ctx context.Context, userID int64) error {
	user, err := u.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return NewHTTPError(http.StatusBadRequest, "Can not delete admin user")
	}

	err = u.users.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return dbError(err)
	}
	return nil
}
