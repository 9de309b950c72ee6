package api

import (
	"net/http"

	"github.com/okian/screener/internal/domain/model"
)

// RolesDependencies exposes the role table.
type RolesDependencies interface {
	Roles() []model.RoleDescriptor
}

// RolesHandler handles role listing requests.
type RolesHandler struct {
	deps RolesDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RolesDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

// HandleGetRoles handles GET /roles requests. An optional category query
// parameter filters the table.
func (h *RolesHandler) HandleGetRoles(w http.ResponseWriter, r *http.Request) {
	roles := h.deps.Roles()
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := make([]model.RoleDescriptor, 0, len(roles))
		for _, role := range roles {
			if role.Category == category {
				filtered = append(filtered, role)
			}
		}
		roles = filtered
	}
	writeJSON(w, http.StatusOK, roleList{Roles: roles})
}
