package security

import (
	"fmt"
	"strings"
	"time"

	"github.com/MerabQardava/EpamGymProject/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// JWTService выпускает и проверяет HMAC-подписанные токены.
type JWTService struct {
	secret []byte
}

// NewJWTService создает новый экземпляр JWTService.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken выпускает токен с username в subject.
func (s *JWTService) GenerateToken(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate проверяет подпись и срок действия токена.
func (s *JWTService) Validate(token string) bool {
	_, err := s.parse(token)
	return err == nil
}

// ExtractUsername возвращает username из subject токена.
func (s *JWTService) ExtractUsername(token string) (string, error) {
	parsed, err := s.parse(token)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidToken
	}

	return subject, nil
}

func (s *JWTService) parse(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
}

// BearerToken извлекает токен из значения заголовка Authorization.
// Возвращает domain.ErrInvalidToken, если заголовок отсутствует или не Bearer.
func BearerToken(header string) (string, error) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", domain.ErrInvalidToken
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
