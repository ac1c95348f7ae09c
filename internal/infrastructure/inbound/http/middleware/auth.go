package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"noders-content-service/internal/application/guard"
	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Claims follow the hosted auth provider's access token layout.
type Claims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

type ProfileResolver interface {
	EnsureProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
}

type Authenticator struct {
	secret   []byte
	issuer   string
	profiles ProfileResolver
	log      ports.Logger
}

func NewAuthenticator(secret, issuer string, profiles ProfileResolver, log ports.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, profiles: profiles, log: log}
}

// Authenticate resolves the bearer token, if any, into a principal. A
// request without a token passes through anonymous; a bad token is 401.
func (a *Authenticator) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return response.Fail(c, http.StatusUnauthorized, custom_errors.ErrInvalidToken.Error())
			}

			claims, err := a.Parse(strings.TrimSpace(raw))
			if err != nil {
				a.log.Debug("Rejected bearer token", slog.String("error", err.Error()))
				return response.Fail(c, http.StatusUnauthorized, custom_errors.ErrInvalidToken.Error())
			}

			profile, err := a.profiles.EnsureProfile(c.Request().Context(), &model.Profile{
				ID:        claims.Subject,
				Email:     claims.Email,
				FullName:  claims.UserMetadata.FullName,
				AvatarURL: claims.UserMetadata.AvatarURL,
			})
			if err != nil {
				return response.Error(c, a.log, err)
			}

			c.Set(principalKey, &model.Principal{UserID: profile.ID, Email: profile.Email, Role: profile.Role})
			return next(c)
		}
	}
}

func (a *Authenticator) Parse(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func PrincipalFrom(c echo.Context) *model.Principal {
	principal, _ := c.Get(principalKey).(*model.Principal)
	return principal
}

// Require evaluates req before the handler runs. Anonymous callers get 401
// with the login location; callers without the role get 403.
func Require(g *guard.Guard, req guard.Requirement, metrics ports.MetricsProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := g.Evaluate(PrincipalFrom(c), req, c.Request().URL.RequestURI())
			metrics.IncrementAuthDecisions(decision.Outcome.String())

			switch decision.Outcome {
			case guard.Redirect:
				c.Response().Header().Set(echo.HeaderLocation, decision.Location)
				return c.JSON(http.StatusUnauthorized, response.Envelope{
					Success:  false,
					Error:    custom_errors.ErrUnauthenticated.Error(),
					Redirect: decision.Location,
				})
			case guard.Forbidden:
				return response.Fail(c, http.StatusForbidden, custom_errors.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}
