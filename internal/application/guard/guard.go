package guard

import (
	"net/url"

	model "noders-content-service/internal/domain/models"
)

type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Decision is the result of evaluating a requirement before a handler runs.
// Location is set only for Redirect.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Requirement lists the roles allowed through. An empty list admits any
// authenticated principal.
type Requirement struct {
	Roles []model.Role
}

func Authenticated() Requirement {
	return Requirement{}
}

func RequireRole(roles ...model.Role) Requirement {
	return Requirement{Roles: roles}
}

type Guard struct {
	loginPath string
}

func New(loginPath string) *Guard {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Guard{loginPath: loginPath}
}

// Evaluate decides access for principal. target is the path the caller asked
// for and is carried in the redirect so login can return there.
func (g *Guard) Evaluate(principal *model.Principal, req Requirement, target string) Decision {
	if principal == nil || principal.UserID == "" {
		return Decision{Outcome: Redirect, Location: g.loginLocation(target)}
	}
	if len(req.Roles) > 0 && !principal.HasRole(req.Roles...) {
		return Decision{Outcome: Forbidden}
	}
	return Decision{Outcome: Allow}
}

func (g *Guard) loginLocation(target string) string {
	if target == "" {
		return g.loginPath
	}
	return g.loginPath + "?" + url.Values{"next": {target}}.Encode()
}
