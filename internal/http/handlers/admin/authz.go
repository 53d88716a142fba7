package admin

import (
	"github.com/e11even-central/api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AuthzMe returns the caller's roles and effective policies.
func (h *Handler) AuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	isSuper := false
	if value, exists := c.Get("admin_is_super"); exists {
		if super, typeOK := value.(bool); typeOK {
			isSuper = super
		}
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternalError, "role fetch failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternalError, "policy fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": isSuper,
		"roles":    roles,
		"policies": policies,
	})
}

// ListRoles lists every known console role.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternalError, "role list failed", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// RoleRequest names a role.
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// CreateRole registers a role so policies can be attached to it.
func (h *Handler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeValidationError, "role create failed", err)
		return
	}
	response.Success(c, gin.H{"role": role})
}

// DeleteRole removes a role and everything attached to it.
func (h *Handler) DeleteRole(c *gin.Context) {
	role := c.Param("role")
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeValidationError, "role delete failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RolePolicyRequest attaches or detaches one policy on a role.
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GetRolePolicies lists the policies attached to a role.
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondError(c, response.CodeValidationError, "role policy fetch failed", err)
		return
	}
	response.Success(c, gin.H{"policies": policies})
}

// GrantRolePolicy attaches a policy to a role.
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondError(c, response.CodeValidationError, "policy grant failed", err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy detaches a policy from a role.
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondError(c, response.CodeValidationError, "policy revoke failed", err)
		return
	}
	response.Success(c, gin.H{"revoked": true})
}

// SetAdminRolesRequest replaces an admin's role set.
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetAdminRoles replaces the roles held by a console account.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid admin id", nil)
		return
	}

	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeValidationError, "invalid request body", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeValidationError, "role assignment failed", err)
		return
	}
	response.Success(c, gin.H{"assigned": true})
}

// GetAdminRoles lists the roles and effective policies of a console
// account.
func (h *Handler) GetAdminRoles(c *gin.Context) {
	adminID, ok := paramUint(c, "id")
	if !ok {
		respondError(c, response.CodeValidationError, "invalid admin id", nil)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternalError, "role fetch failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternalError, "policy fetch failed", err)
		return
	}
	response.Success(c, gin.H{
		"roles":    roles,
		"policies": policies,
	})
}
