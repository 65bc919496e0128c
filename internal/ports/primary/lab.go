package primary

import "context"

// LabService defines the primary port for lab operations.
type LabService interface {
	// CreateLab registers a new, active lab.
	CreateLab(ctx context.Context, req CreateLabRequest) (*Lab, error)

	// GetLab retrieves a lab by ID.
	GetLab(ctx context.Context, labID string) (*Lab, error)

	// ListLabs lists labs, optionally filtered by status.
	ListLabs(ctx context.Context, status string) ([]*Lab, error)

	// DeactivateLab marks a lab inactive. Labs are never deleted.
	DeactivateLab(ctx context.Context, labID string) error
}

// CreateLabRequest contains parameters for registering a lab.
type CreateLabRequest struct {
	Code     string `validate:"required,max=20"`
	Name     string `validate:"required,max=100"`
	Location string `validate:"max=200"`
}

// Lab represents a lab at the port boundary.
type Lab struct {
	ID        string
	Code      string
	Name      string
	Location  string
	Status    string
	CreatedAt string
}
