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

package api

import (
	"github.com/unikorn-cloud/users-conformance/pkg/fixtures"
	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

// UserPayloadBuilder builds user payloads for testing.
type UserPayloadBuilder struct {
	payload openapi.UserCreate
}

// NewUserPayload creates a new, valid, user payload builder.
func NewUserPayload(generator *fixtures.Generator) *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: generator.User(),
	}
}

func (b *UserPayloadBuilder) WithName(name string) *UserPayloadBuilder {
	b.payload.Name = name
	return b
}

func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload.Email = email
	return b
}

// WithGender is unchecked so invalid values can be sent.
func (b *UserPayloadBuilder) WithGender(gender openapi.Gender) *UserPayloadBuilder {
	b.payload.Gender = gender
	return b
}

// WithStatus is unchecked so invalid values can be sent.
func (b *UserPayloadBuilder) WithStatus(status openapi.Status) *UserPayloadBuilder {
	b.payload.Status = status
	return b
}

// Without blanks the named field, as if it were never provided.
func (b *UserPayloadBuilder) Without(field string) *UserPayloadBuilder {
	switch field {
	case fixtures.FieldName:
		b.payload.Name = ""
	case fixtures.FieldEmail:
		b.payload.Email = ""
	case fixtures.FieldGender:
		b.payload.Gender = ""
	case fixtures.FieldStatus:
		b.payload.Status = ""
	}

	return b
}

func (b *UserPayloadBuilder) Build() openapi.UserCreate {
	return b.payload
}
