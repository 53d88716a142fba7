package authz

import "fmt"

// RoleSeed describes a built-in role.
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds returns the preset console role matrix.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "people_ops",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/users", Action: "*"},
				{Object: "/admin/users/:id", Action: "*"},
				{Object: "/admin/users/batch-status", Action: "*"},
				{Object: "/admin/shifts", Action: "*"},
				{Object: "/admin/shifts/:id", Action: "*"},
				{Object: "/admin/shifts/:id/assignments", Action: "*"},
				{Object: "/admin/shifts/:id/assignments/:userId", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     "training",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/courses", Action: "*"},
				{Object: "/admin/courses/:id", Action: "*"},
				{Object: "/admin/courses/:id/lessons", Action: "*"},
				{Object: "/admin/lessons/:id", Action: "*"},
				{Object: "/admin/channels", Action: "*"},
				{Object: "/admin/channels/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     "finance",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/tips", Action: "GET"},
				{Object: "/admin/payment-sessions", Action: "GET"},
				{Object: "/admin/dashboard/overview", Action: "GET"},
				{Object: "/admin/dashboard/trends", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles seeds the preset roles and their policies.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
