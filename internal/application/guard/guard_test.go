package guard

import (
	"testing"

	model "noders-content-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestGuard_Evaluate(t *testing.T) {
	g := New("/login")
	member := &model.Principal{UserID: "u1", Role: model.RoleMember}
	admin := &model.Principal{UserID: "u2", Role: model.RoleAdmin}

	tests := []struct {
		name      string
		principal *model.Principal
		req       Requirement
		target    string
		want      Decision
	}{
		{
			name:   "anonymous is redirected with return path",
			req:    Authenticated(),
			target: "/admin/posts",
			want:   Decision{Outcome: Redirect, Location: "/login?next=%2Fadmin%2Fposts"},
		},
		{
			name:      "principal without user id is anonymous",
			principal: &model.Principal{},
			req:       Authenticated(),
			want:      Decision{Outcome: Redirect, Location: "/login"},
		},
		{
			name:      "member passes authenticated requirement",
			principal: member,
			req:       Authenticated(),
			want:      Decision{Outcome: Allow},
		},
		{
			name:      "member forbidden from admin route",
			principal: member,
			req:       RequireRole(model.RoleAdmin),
			want:      Decision{Outcome: Forbidden},
		},
		{
			name:      "admin allowed on admin route",
			principal: admin,
			req:       RequireRole(model.RoleAdmin),
			want:      Decision{Outcome: Allow},
		},
		{
			name:      "any listed role is enough",
			principal: member,
			req:       RequireRole(model.RoleAdmin, model.RoleMember),
			want:      Decision{Outcome: Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Evaluate(tt.principal, tt.req, tt.target))
		})
	}
}

func TestNew_DefaultLoginPath(t *testing.T) {
	d := New("").Evaluate(nil, Authenticated(), "")
	assert.Equal(t, "/login", d.Location)
	assert.Equal(t, "redirect", d.Outcome.String())
}
