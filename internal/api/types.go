package api

import "time"

// Global roles as the backend reports them in rol_global.
const (
	GlobalRoleAdmin = "admin"
	GlobalRoleUser  = "user"
)

// UserProfile is the backend's user record. Field names follow the wire
// format of the existing API, which is Spanish throughout.
type UserProfile struct {
	ID         int    `json:"id_usuario"`
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	GlobalRole string `json:"rol_global"`
}

// ProjectMember is one entry of a project's usuarios list.
type ProjectMember struct {
	UserID      int        `json:"id_usuario"`
	Name        string     `json:"nombre"`
	Email       string     `json:"email"`
	ProjectRole string     `json:"rol_proyecto"`
	JoinedAt    *time.Time `json:"fecha_union,omitempty"`
}

// Project as returned by /projects endpoints. Members includes the creator.
type Project struct {
	ID          int             `json:"id_proyecto"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	CreatorID   int             `json:"id_creador"`
	Members     []ProjectMember `json:"usuarios"`
}

// Member returns the membership entry for userID, or nil.
func (p *Project) Member(userID int) *ProjectMember {
	for i := range p.Members {
		if p.Members[i].UserID == userID {
			return &p.Members[i]
		}
	}
	return nil
}

// Task as returned by /tasks endpoints. CallerProjectRole is not intrinsic
// to the task: the backend attaches the requesting user's role in the task's
// project so clients can make permission decisions without a second fetch.
type Task struct {
	ID                int        `json:"id_tarea"`
	ProjectID         int        `json:"id_proyecto"`
	Title             string     `json:"titulo"`
	Description       string     `json:"descripcion"`
	Status            string     `json:"estado"`
	CreatorID         int        `json:"id_creador"`
	CreatorName       string     `json:"creador_nombre,omitempty"`
	AssigneeID        *int       `json:"id_asignado"`
	AssigneeName      string     `json:"asignado_nombre,omitempty"`
	DueDate           *time.Time `json:"fecha_vencimiento"`
	CreatedAt         *time.Time `json:"fecha_creacion,omitempty"`
	CallerProjectRole string     `json:"rol_proyecto,omitempty"`
}

// NewProject is the request body for creating or replacing a project.
type NewProject struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// NewTask is the request body for creating or replacing a task.
type NewTask struct {
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion"`
	ProjectID   int        `json:"id_proyecto"`
	AssigneeID  *int       `json:"id_asignado,omitempty"`
	DueDate     *time.Time `json:"fecha_vencimiento,omitempty"`
}
