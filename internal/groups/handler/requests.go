package handler

import (
	"fmt"
	"strings"

	"cayley/internal/groups/models"
	dErrors "cayley/pkg/domain-errors"
)

const (
	maxNameLength     = 128
	maxComposeLength  = 1024
	maxSubmittedOrder = 4096
)

// CreateGroupRequest is the body for POST /api/groups.
type CreateGroupRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Members     []string            `json:"members"`
	CayleyTable [][]string          `json:"cayleyTable"`
	Identity    string              `json:"identity,omitempty"`
	CycleGroups map[string][]string `json:"cycleGroups,omitempty"`
}

// Validate checks only what the catalog requires: a name.
func (r *CreateGroupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	if len(r.Members) > maxSubmittedOrder || len(r.CayleyTable) > maxSubmittedOrder {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("groups are limited to %d members", maxSubmittedOrder))
	}
	return nil
}

// Definition converts the request into the stored shape.
func (r *CreateGroupRequest) Definition() models.Definition {
	return models.Definition{
		Name:        r.Name,
		Description: r.Description,
		Members:     r.Members,
		CayleyTable: r.CayleyTable,
		Identity:    r.Identity,
		CycleGroups: r.CycleGroups,
	}
}

// GenerateGroupRequest is the body for POST /api/groups/generate.
type GenerateGroupRequest struct {
	Family string `json:"family"`
	Order  int    `json:"order"`
}

// Validate requires a family; order bounds are the service's call.
func (r *GenerateGroupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Family = strings.TrimSpace(r.Family)
	if r.Family == "" {
		return dErrors.New(dErrors.CodeValidation, "family is required")
	}
	return nil
}

// ComposeRequest is the body for POST /api/groups/{id}/compose.
type ComposeRequest struct {
	Elements []string `json:"elements"`
}

// Validate bounds the sequence length. Labels are passed on verbatim so that
// padded input halts the trace instead of being corrected.
func (r *ComposeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Elements) > maxComposeLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d elements can be composed", maxComposeLength))
	}
	return nil
}
