package speech

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAudioToken is returned when a pull URL token fails
// verification or has expired.
var ErrInvalidAudioToken = errors.New("invalid audio token")

type audioClaims struct {
	AudioID string `json:"audio_id"`
	jwt.RegisteredClaims
}

// URLSigner mints and verifies short-lived signed pull URLs for
// synthesized audio. The telephony provider fetches audio over the
// public internet, so every URL carries an HMAC-signed expiring token.
type URLSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

func NewURLSigner(secret, baseURL string, ttl time.Duration) *URLSigner {
	return &URLSigner{
		secret:  []byte(secret),
		baseURL: baseURL,
		ttl:     ttl,
	}
}

// SignURL builds the public pull URL for an audio id.
func (s *URLSigner) SignURL(audioID string) (string, error) {
	now := time.Now()
	claims := audioClaims{
		AudioID: audioID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign audio token: %w", err)
	}
	return fmt.Sprintf("%s/api/audio/%s?token=%s", s.baseURL, audioID, token), nil
}

// Verify checks the token and confirms it was minted for audioID.
func (s *URLSigner) Verify(audioID, tokenString string) error {
	claims := &audioClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidAudioToken
	}
	if claims.AudioID != audioID {
		return ErrInvalidAudioToken
	}
	return nil
}
