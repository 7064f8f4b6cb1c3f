package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateStudentRequest struct {
	RollNumber   string `json:"roll_number"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	DepartmentID uint   `json:"department_id"`
}

func (req *CreateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RollNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Year, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.DepartmentID, validation.Required),
	)
}

type UpdateStudentRequest struct {
	RollNumber   string `json:"roll_number"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	DepartmentID uint   `json:"department_id"`
}

func (req *UpdateStudentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RollNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Year, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.DepartmentID, validation.Required),
	)
}

type DepartmentRequest struct {
	Name string `json:"name"`
}

func (req *DepartmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}
