package authz

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// policyModel is a plain RBAC model: a subject (role) is allowed an
// action on a resource when a policy line, directly or through role
// inheritance, says so.
const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// rolePolicies is the whole authorization table. Roles are static for
// this application, so the policy ships in code rather than in the
// database.
var rolePolicies = [][3]string{
	{RoleStaff, "leave", "read"},
	{RoleStaff, "leave", "create"},
	{RoleStaff, "holiday", "read"},
	{RoleStaff, "person", "read"},
	{RoleStaff, "team", "read"},
	{RoleStaff, "balance", "read"},
	{RoleStaff, "notification", "read"},

	{RoleManager, "leave", "decide"},
	{RoleManager, "person", "write"},
	{RoleManager, "team", "write"},
	{RoleManager, "balance", "write"},
	{RoleManager, "user", "manage"},

	{RoleAdmin, "holiday", "write"},
}

// roleInheritance: admin acts as manager, manager acts as staff.
var roleInheritance = [][2]string{
	{RoleAdmin, RoleManager},
	{RoleManager, RoleStaff},
}

//go:generate mockgen -source=policy.go -destination=mock/policy_mock.go -package=mock
type Service interface {
	Authorize(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Authorize(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
