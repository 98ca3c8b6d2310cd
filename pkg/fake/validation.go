/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

const (
	messageBlank      = "can't be blank"
	messageInvalid    = "is invalid"
	messageTaken      = "has already been taken"
	messageGender     = "can't be blank, can be male of female"
	messageTooLongFmt = "is too long (maximum is %d characters)"

	tagNotBlank   = "notblank"
	tagNameLength = "namelength"

	fieldGender = "gender"
	fieldEmail  = "email"
)

// userInput is a user as received on the wire, before validation.
type userInput struct {
	Name   string `json:"name" validate:"notblank,namelength"`
	Email  string `json:"email" validate:"notblank,email"`
	Gender string `json:"gender" validate:"oneof=male female"`
	Status string `json:"status" validate:"oneof=active inactive"`
}

func inputFromUser(user openapi.User) userInput {
	return userInput{
		Name:   user.Name,
		Email:  user.Email,
		Gender: string(user.Gender),
		Status: string(user.Status),
	}
}

func inputFromCreate(in openapi.UserCreate) userInput {
	return userInput{
		Name:   in.Name,
		Email:  in.Email,
		Gender: string(in.Gender),
		Status: string(in.Status),
	}
}

// apply returns the patched input and the Go names of the present fields.
func (in userInput) apply(patch openapi.UserPatch) (userInput, []string) {
	var fields []string

	if v, ok := patch.Name.Get(); ok {
		in.Name = v
		fields = append(fields, "Name")
	}

	if v, ok := patch.Email.Get(); ok {
		in.Email = v
		fields = append(fields, "Email")
	}

	if v, ok := patch.Gender.Get(); ok {
		in.Gender = string(v)
		fields = append(fields, "Gender")
	}

	if v, ok := patch.Status.Get(); ok {
		in.Status = string(v)
		fields = append(fields, "Status")
	}

	return in, fields
}

func (in userInput) create() openapi.UserCreate {
	return openapi.UserCreate{
		Name:   in.Name,
		Email:  in.Email,
		Gender: openapi.Gender(in.Gender),
		Status: openapi.Status(in.Status),
	}
}

// userValidator produces GoRest style field errors.
type userValidator struct {
	validate      *validator.Validate
	maxNameLength int
}

func newUserValidator(maxNameLength int) (*userValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	if err := validate.RegisterValidation(tagNotBlank, validators.NotBlank); err != nil {
		return nil, err
	}

	nameLength := func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= maxNameLength
	}

	if err := validate.RegisterValidation(tagNameLength, nameLength); err != nil {
		return nil, err
	}

	v := &userValidator{
		validate:      validate,
		maxNameLength: maxNameLength,
	}

	return v, nil
}

// check validates the named fields, or all of them when none are given.
func (v *userValidator) check(in userInput, fields ...string) (openapi.ErrorEntries, error) {
	var err error

	if len(fields) == 0 {
		err = v.validate.Struct(in)
	} else {
		err = v.validate.StructPartial(in, fields...)
	}

	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return nil, err
	}

	entries := make(openapi.ErrorEntries, 0, len(verrs))

	for _, fe := range verrs {
		entries = append(entries, openapi.ErrorEntry{
			Field:   fe.Field(),
			Message: v.message(fe),
		})
	}

	return entries, nil
}

func (v *userValidator) message(fe validator.FieldError) string {
	if fe.Field() == fieldGender {
		return messageGender
	}

	switch fe.Tag() {
	case tagNameLength:
		return fmt.Sprintf(messageTooLongFmt, v.maxNameLength)
	case "email":
		return messageInvalid
	}

	// GoRest reports an unknown status as blank.
	return messageBlank
}

func hasField(entries openapi.ErrorEntries, field string) bool {
	for _, entry := range entries {
		if entry.Field == field {
			return true
		}
	}

	return false
}
