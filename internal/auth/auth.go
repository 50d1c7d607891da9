package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized неверные учётные данные либо отсутствующий/просроченный токен
var ErrUnauthorized = errors.New("unauthorized")

// Authenticator проверяет учётные данные администратора и выпускает
// короткоживущие подписанные токены. Проверка токена — чистая функция
// от значения заголовка, без обращения к хранилищу.
type Authenticator struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func New(username, password string, secret []byte, ttl time.Duration) *Authenticator {
	return &Authenticator{
		username: username,
		password: password,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login сверяет пару логин/пароль и возвращает подписанный токен
func (a *Authenticator) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !userOK || !passOK {
		return "", ErrUnauthorized
	}
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyHeader валидирует значение заголовка Authorization и возвращает имя
// администратора из токена
func (a *Authenticator) VerifyHeader(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrUnauthorized
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if raw == "" {
		return "", ErrUnauthorized
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return a.now() }))
	if err != nil || !tok.Valid {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
