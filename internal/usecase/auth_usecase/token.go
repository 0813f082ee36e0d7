package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークンの有効期限（cookieも同じ）
const TokenTTL = 30 * 24 * time.Hour

// 壊れている・期限切れ・署名違いはすべてこれ
var ErrInvalidToken = errors.New("invalid token")

// トークンから復元した本人情報
type Identity struct {
	UserID       int64
	TokenVersion int
}

type Claims struct {
	TokenVersion int `json:"tv"`
	jwt.RegisteredClaims
}

// HS256で署名するトークンサービス
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// DI
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

func (s *JWTService) Issue(userID int64, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// 署名と期限を検証して本人情報を返す
func (s *JWTService) Parse(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrInvalidToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || token == nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, ErrInvalidToken
	}
	if claims.TokenVersion < 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, TokenVersion: claims.TokenVersion}, nil
}

// 実時間のClock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
