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

package openapi

// Gender is a user's gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Status is a user's account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a user record as held by the provider.
type User struct {
	Id     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender Gender `json:"gender"`
	Status Status `json:"status"`
}

// Users is a page of users.
type Users []User

// UserCreate is the body of a create or replace request.  Every field is
// always serialized, an empty value is sent as an empty string so the
// provider can reject it.
type UserCreate struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender Gender `json:"gender"`
	Status Status `json:"status"`
}

// UserPatch is the body of a partial update.  Absent fields are dropped from
// the JSON object entirely.
type UserPatch struct {
	Name   Optional[string] `json:"name,omitzero"`
	Email  Optional[string] `json:"email,omitzero"`
	Gender Optional[Gender] `json:"gender,omitzero"`
	Status Optional[Status] `json:"status,omitzero"`
}

// Empty returns true if no field is present.
func (p UserPatch) Empty() bool {
	return p.Name.IsZero() && p.Email.IsZero() && p.Gender.IsZero() && p.Status.IsZero()
}

// ErrorEntry is a single validation failure.
type ErrorEntry struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorEntries is the body of a 422 response.
type ErrorEntries []ErrorEntry

// Message is the body of 401 and 404 responses.
type Message struct {
	Message string `json:"message"`
}
