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
	"encoding/json"

	"k8s.io/utils/ptr"
)

// Optional is a value that may be absent.  Unlike a pointer with omitempty it
// distinguishes "not sent" from "sent as the zero value", and the zero
// Optional is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{
		value: value,
		set:   true,
	}
}

// FromPtr returns an absent value for nil, or the pointed to value.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}

	return Some(*p)
}

// IsZero reports absence, encoding/json uses this to honour omitzero.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Ptr returns a copy of the value, or nil if absent.
func (o Optional[T]) Ptr() *T {
	if !o.set {
		return nil
	}

	return ptr.To(o.value)
}

// OrElse returns the value, or def if absent.
func (o Optional[T]) OrElse(def T) T {
	return ptr.Deref(o.Ptr(), def)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}

	return json.Marshal(o.value)
}

// UnmarshalJSON marks the value as present, an explicit null is present with
// the zero value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var value T

	if string(data) != "null" {
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
	}

	*o = Some(value)

	return nil
}
