package main

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Form payloads for each entity operation. Constraints mirror the entity
// rules: title 5-255, description up to 2000, category required, name
// 2-255, email up to 255, password 6-128 with a repeat field.

type reportForm struct {
	Title       string `form:"title" binding:"required,min=5,max=255"`
	Description string `form:"description" binding:"omitempty,max=2000"`
	Type        string `form:"type" binding:"required"`
	Resolved    bool   `form:"resolved"`
	Category    uint   `form:"category" binding:"required"`
}

type categoryForm struct {
	Name string `form:"name" binding:"required,min=2,max=255"`
}

type profileForm struct {
	Email string `form:"email" binding:"required,email,max=255"`
}

type upgradePasswordForm struct {
	Password       string `form:"password" binding:"required,min=6,max=128"`
	RepeatPassword string `form:"repeat_password" binding:"required,eqfield=Password"`
}

// formErrors flattens binding failures into field -> message for inline
// display. Non-validator errors land under the "" key.
func formErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[""] = "invalid form submission"
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This value should not be blank."
	case "min":
		return fmt.Sprintf("This value is too short. It should have %s characters or more.", fe.Param())
	case "max":
		return fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
	case "email":
		return "This value is not a valid email address."
	case "eqfield":
		return "The values do not match."
	}
	return "This value is not valid."
}
