// Package jazz создаёт видеокомнаты для подтверждённых встреч через API SaluteJazz.
package jazz

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.salutejazz.ru/v1"

	requestTimeout = 30 * time.Second
	assertionTTL   = time.Hour
)

// ErrInvalidSDKKey ключ SDK не удалось разобрать
var ErrInvalidSDKKey = errors.New("invalid jazz sdk key")

// sdkKey содержимое ключа SDK: base64 от JSON с идентификатором проекта и JWK
type sdkKey struct {
	ProjectID string `json:"projectId"`
	Key       jwk    `json:"key"`
}

type jwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	Kid string `json:"kid"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d"`
}

type sdkClaims struct {
	SDKProjectID string `json:"sdkProjectId"`
	jwt.RegisteredClaims
}

// Client клиент API видеокомнат
type Client struct {
	baseURL    string
	projectID  string
	kid        string
	key        *ecdsa.PrivateKey
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient разбирает ключ SDK и создаёт клиента
func NewClient(encodedKey, baseURL string, logger *zap.Logger) (*Client, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encodedKey))
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrInvalidSDKKey, err)
	}

	var sk sdkKey
	if err := json.Unmarshal(raw, &sk); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", ErrInvalidSDKKey, err)
	}

	key, err := sk.Key.privateKey()
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		projectID:  sk.ProjectID,
		kid:        sk.Key.Kid,
		key:        key,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}, nil
}

// CreateMeeting создаёт комнату от имени пользователя и возвращает ссылку на неё
func (c *Client) CreateMeeting(ctx context.Context, userID uuid.UUID, title, description string) (string, error) {
	token, err := c.transportToken(ctx, userID)
	if err != nil {
		return "", err
	}

	body := createRoomRequest{
		RoomTitle: title,
		RoomType:  "MEETING",
		Webinar: webinar{
			Reusable:    false,
			ScheduledAt: time.Now().UTC().Format(time.RFC3339),
			Description: description,
		},
	}

	var resp createRoomResponse
	if err := c.post(ctx, "/room/create", token, body, &resp); err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}

	c.logger.Info("Meeting room created",
		zap.String("user_id", userID.String()),
		zap.String("room_url", resp.RoomURL),
	)

	return resp.RoomURL, nil
}

type createRoomRequest struct {
	RoomTitle                         string  `json:"roomTitle"`
	ServerVideoRecordAutoStartEnabled bool    `json:"serverVideoRecordAutoStartEnabled"`
	RoomType                          string  `json:"roomType"`
	Webinar                           webinar `json:"webinar"`
	TranscriptionAutoStartEnabled     bool    `json:"transcriptionAutoStartEnabled"`
	SummarizationEnabled              bool    `json:"summarizationEnabled"`
}

type webinar struct {
	Reusable    bool   `json:"reusable"`
	ScheduledAt string `json:"scheduledAt"`
	Description string `json:"description"`
}

type createRoomResponse struct {
	RoomURL string `json:"roomUrl"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// transportToken обменивает подписанное утверждение на токен доступа
func (c *Client) transportToken(ctx context.Context, userID uuid.UUID) (string, error) {
	assertion, err := c.assertion(userID, time.Now())
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	var resp loginResponse
	if err := c.post(ctx, "/auth/login", assertion, nil, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: empty token")
	}

	return resp.Token, nil
}

func (c *Client) assertion(userID uuid.UUID, now time.Time) (string, error) {
	claims := sdkClaims{
		SDKProjectID: c.projectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES384, claims)
	token.Header["kid"] = c.kid

	return token.SignedString(c.key)
}

func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// privateKey собирает ключ P-384 из JWK
func (k jwk) privateKey() (*ecdsa.PrivateKey, error) {
	if k.Kty != "EC" || k.Crv != "P-384" {
		return nil, fmt.Errorf("%w: unsupported key %s/%s", ErrInvalidSDKKey, k.Kty, k.Crv)
	}

	x, err := decodeCoordinate(k.X)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %w", ErrInvalidSDKKey, err)
	}
	y, err := decodeCoordinate(k.Y)
	if err != nil {
		return nil, fmt.Errorf("%w: y: %w", ErrInvalidSDKKey, err)
	}
	d, err := decodeCoordinate(k.D)
	if err != nil {
		return nil, fmt.Errorf("%w: d: %w", ErrInvalidSDKKey, err)
	}

	curve := elliptic.P384()
	if !curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point is not on curve", ErrInvalidSDKKey)
	}

	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         d,
	}, nil
}

func decodeCoordinate(s string) (*big.Int, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}
