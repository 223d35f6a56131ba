package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

// policy is the full permission table. Roles are a closed set in this
// product, so the policy ships with the binary instead of a database.
var policy = [][3]string{
	{"hr", "assets", "read"},
	{"hr", "assets", "write"},
	{"hr", "asset-requests", "read"},
	{"hr", "asset-requests", "decide"},
	{"hr", "assignments", "read"},
	{"hr", "team", "read"},
	{"hr", "team", "manage"},
	{"hr", "subscription", "read"},
	{"hr", "subscription", "upgrade"},

	{"employee", "assets", "read"},
	{"employee", "asset-requests", "read"},
	{"employee", "asset-requests", "create"},
	{"employee", "assignments", "read"},
	{"employee", "assignments", "return"},
	{"employee", "team", "read"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	for _, p := range policy {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
