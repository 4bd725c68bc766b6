package asset

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stocktakehq/stocktake/pkg/constants"
	"github.com/stocktakehq/stocktake/pkg/serrors"
)

type CreateDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SerialNo    string `json:"serial_no"`
	// AssignedTo is a user id, or empty for unassigned.
	AssignedTo string `json:"assigned_to" validate:"omitempty,uuid"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.SerialNo = strings.TrimSpace(d.SerialNo)
	d.AssignedTo = strings.TrimSpace(d.AssignedTo)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}

	validatorErrs := errs.(validator.ValidationErrors)
	return serrors.ProcessValidatorErrors(validatorErrs, assetFieldMessage), false
}

// Assignment normalizes the wire form once; empty means unassigned.
func (d *CreateDTO) Assignment() (Assignment, error) {
	return ParseAssignment(d.AssignedTo)
}

// UpdateDTO is a patch: nil fields are left untouched. An AssignedTo of ""
// unassigns; a user id reassigns.
type UpdateDTO struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	SerialNo    *string `json:"serial_no"`
	AssignedTo  *string `json:"assigned_to"`
}

func (d *UpdateDTO) Normalize() {
	if d.Name != nil {
		v := strings.TrimSpace(*d.Name)
		d.Name = &v
	}
	if d.Description != nil {
		v := strings.TrimSpace(*d.Description)
		d.Description = &v
	}
	if d.SerialNo != nil {
		v := strings.TrimSpace(*d.SerialNo)
		d.SerialNo = &v
	}
	if d.AssignedTo != nil {
		v := strings.TrimSpace(*d.AssignedTo)
		d.AssignedTo = &v
	}
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	out := serrors.ValidationErrors{}
	if d.Name != nil && *d.Name == "" {
		out["Name"] = "name must not be empty"
	}
	if d.AssignedTo != nil && *d.AssignedTo != "" {
		if _, err := ParseAssignment(*d.AssignedTo); err != nil {
			out["AssignedTo"] = "assigned_to must be a user id or empty"
		}
	}
	return out, len(out) == 0
}

// Assignment returns the requested assignment change, or nil when the
// patch leaves assignment alone.
func (d *UpdateDTO) Assignment() (*Assignment, error) {
	if d.AssignedTo == nil {
		return nil, nil
	}
	a, err := ParseAssignment(*d.AssignedTo)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func assetFieldMessage(field, tag string) string {
	switch field {
	case "Name":
		return "name is required"
	case "AssignedTo":
		return "assigned_to must be a user id or empty"
	default:
		return fmt.Sprintf("%s failed validation on %q", field, tag)
	}
}
