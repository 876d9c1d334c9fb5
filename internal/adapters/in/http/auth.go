package http

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actorContextKey = "actor"
	tokenContextKey = "token"
)

// Claims are issued by the auth service. RestaurantID is set for restaurant
// staff only.
type Claims struct {
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator turns HS256 bearer tokens into actors.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Authenticator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Middleware stores the actor and the raw token in the echo context.
func (a *Authenticator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return newRequestError(kindUnauthorized, err.Error())
		}

		actor, err := a.Authenticate(token)
		if err != nil {
			return newRequestError(kindUnauthorized, err.Error())
		}

		c.Set(actorContextKey, actor)
		c.Set(tokenContextKey, token)
		return next(c)
	}
}

// Authenticate validates the token and builds the actor it names.
func (a *Authenticator) Authenticate(token string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid subject: %w", err)
	}

	var restaurantID *kernel.UUID
	if claims.RestaurantID != "" {
		rid, ridErr := kernel.UUIDFromString(claims.RestaurantID)
		if ridErr != nil {
			return kernel.Actor{}, fmt.Errorf("invalid restaurant_id: %w", ridErr)
		}
		restaurantID = &rid
	}

	actor, err := kernel.NewActor(id, kernel.Role(strings.ToLower(claims.Role)), restaurantID)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid claims: %w", err)
	}
	return actor, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(token), nil
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, newRequestError(kindUnauthorized, "missing actor")
	}
	return actor, nil
}

func tokenFrom(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}
