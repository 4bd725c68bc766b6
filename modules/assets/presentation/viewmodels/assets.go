package viewmodels

type Asset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SerialNo    string `json:"serial_no,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	ContainerID string `json:"container_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Container struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	ParentID    string `json:"parent_id,omitempty"`
	OwnerUserID string `json:"owner_user_id,omitempty"`
}
