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

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidGender = errors.New("invalid gender: must be one of male, female")
	ErrInvalidStatus = errors.New("invalid status: must be one of active, inactive")
)

// Genders lists every valid gender.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

// Statuses lists every valid status.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive}
}

func (g Gender) Valid() bool {
	return slices.Contains(Genders(), g)
}

func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// ParseGender accepts only the closed set of genders.  Responses are decoded
// without this check, see Valid.
func ParseGender(s string) (Gender, error) {
	if !Gender(s).Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}

	return Gender(s), nil
}

// ParseStatus accepts only the closed set of statuses.
func ParseStatus(s string) (Status, error) {
	if !Status(s).Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}

	return Status(s), nil
}
