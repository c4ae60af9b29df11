package project

type CreateProjectDTO struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	SecurityClass string `json:"security_class"`
}

type CreateAccessRuleDTO struct {
	AccessType   string `json:"access_type"`
	TargetID     *int64 `json:"target_id,omitempty"`
	MinClearance *int   `json:"min_clearance,omitempty"`
	Role         string `json:"role"`
}

type AssignMemberDTO struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

type ProjectResponse struct {
	Project *Project    `json:"project"`
	Role    string      `json:"role"`
	Members []*Assignment `json:"members,omitempty"`
}

type ProjectListResponse struct {
	Projects []*ProjectListEntry `json:"projects"`
}

type ProjectListEntry struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SecurityClass string `json:"security_class"`
	Status        string `json:"status"`
	Role          string `json:"role"`
}
