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

// Package fixtures generates user records for use as test input.
//
// A Generator owns its random source, so a run seeded with a fixed value
// produces the same names, genders and statuses every time.  Emails are
// the exception: they embed a monotonic, clock derived token and are unique
// across every call on a Generator regardless of seed.
package fixtures

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldGender = "gender"
	FieldStatus = "status"

	// DefaultDomain is used for generated email addresses.
	DefaultDomain = "example.com"
)

//nolint:gochecknoglobals
var (
	firstNames = []string{
		"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Jessica",
		"William", "Ashley", "James", "Amanda", "Charles", "Stephanie", "Thomas", "Melissa",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	}
)

// AllFields lists every user field that can be partially updated.
func AllFields() []string {
	return []string{FieldName, FieldEmail, FieldGender, FieldStatus}
}

type options struct {
	seed   uint64
	seeded bool
	clock  func() time.Time
	domain string
}

// Option configures a Generator.
type Option func(*options)

// WithSeed makes the generator deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithClock replaces the time source used for email tokens.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithDomain sets the email domain.
func WithDomain(domain string) Option {
	return func(o *options) {
		o.domain = domain
	}
}

// Generator produces user fixtures.  It is safe for concurrent use.
type Generator struct {
	lock   sync.Mutex
	rand   *rand.Rand
	clock  func() time.Time
	domain string
	seed   uint64

	// token is the last email token handed out.
	token int64
}

// New returns a new generator.
func New(opts ...Option) *Generator {
	o := &options{
		clock:  time.Now,
		domain: DefaultDomain,
	}

	for _, opt := range opts {
		opt(o)
	}

	if !o.seeded {
		o.seed = uint64(o.clock().UnixNano()) //nolint:gosec
	}

	return &Generator{
		rand:   rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)), //nolint:gosec
		clock:  o.clock,
		domain: o.domain,
		seed:   o.seed,
	}
}

// Seed returns the seed in use, log it to reproduce a run.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// nextToken returns a strictly increasing value based on the clock, if the
// clock has not advanced since the last call the previous token is bumped.
// Must be called with the lock held.
func (g *Generator) nextToken() int64 {
	token := max(g.clock().UnixNano(), g.token+1)
	g.token = token

	return token
}

func pick[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}

func (g *Generator) nameParts() (string, string) {
	return pick(g.rand, firstNames), pick(g.rand, lastNames)
}

// Name returns a random "First Last" name.
func (g *Generator) Name() string {
	g.lock.Lock()
	defer g.lock.Unlock()

	first, last := g.nameParts()

	return first + " " + last
}

// Email returns a unique address with the given local part prefix.
func (g *Generator) Email(prefix string) string {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.email(prefix)
}

func (g *Generator) email(prefix string) string {
	return fmt.Sprintf("%s%d@%s", prefix, g.nextToken(), g.domain)
}

// Gender returns a random gender.
func (g *Generator) Gender() openapi.Gender {
	g.lock.Lock()
	defer g.lock.Unlock()

	return pick(g.rand, openapi.Genders())
}

// Status returns a random status.
func (g *Generator) Status() openapi.Status {
	g.lock.Lock()
	defer g.lock.Unlock()

	return pick(g.rand, openapi.Statuses())
}

// User returns a valid user with a unique email.
func (g *Generator) User() openapi.UserCreate {
	g.lock.Lock()
	defer g.lock.Unlock()

	first, last := g.nameParts()

	return openapi.UserCreate{
		Name:   first + " " + last,
		Email:  g.email(strings.ToLower(first) + "." + strings.ToLower(last) + "."),
		Gender: pick(g.rand, openapi.Genders()),
		Status: pick(g.rand, openapi.Statuses()),
	}
}

// PartialUpdate returns a patch with fresh values for the named fields only,
// names are case insensitive and unknown names are ignored.  With no fields
// every field is populated.
func (g *Generator) PartialUpdate(fields ...string) openapi.UserPatch {
	if len(fields) == 0 {
		fields = AllFields()
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	var patch openapi.UserPatch

	for _, field := range fields {
		switch strings.ToLower(field) {
		case FieldName:
			first, last := g.nameParts()
			patch.Name = openapi.Some(first + " " + last)
		case FieldEmail:
			patch.Email = openapi.Some(g.email("updated"))
		case FieldGender:
			patch.Gender = openapi.Some(pick(g.rand, openapi.Genders()))
		case FieldStatus:
			patch.Status = openapi.Some(pick(g.rand, openapi.Statuses()))
		}
	}

	return patch
}
