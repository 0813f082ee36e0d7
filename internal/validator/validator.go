package validator

import (
	"errors"
	"net/mail"
	"strings"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// パスワード最低文字数
const MinPasswordLength = 8

// 入力エラー（Messageはそのままレスポンスに出す）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// ValidationErrorなら取り出す
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// サインアップの入力を検証
func ValidateRegister(name string, email string, password string) error {
	// 必須チェック
	if strings.TrimSpace(name) == "" {
		return invalid("name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ログインの入力を検証（存在チェックはしない）
func ValidateLogin(email string, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return invalid("email and password are required")
	}
	return nil
}

// プロフィール更新（空欄は「変更しない」）
func ValidateProfileUpdate(email string, password string) error {
	if email != "" {
		if err := ValidateEmail(email); err != nil {
			return err
		}
	}
	if password != "" {
		return ValidatePassword(password)
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email is required")
	}
	if !isEmailLike(email) {
		return invalid("email is invalid")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return invalid("password must be at least 8 characters")
	}
	return nil
}

// 評価は1〜5の整数
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}

// 簡易メール形式をチェック（表示名付きは不可）
func isEmailLike(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}
