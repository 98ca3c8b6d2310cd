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
	"cmp"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

var (
	errNotFound   = errors.New("user not found")
	errEmailTaken = errors.New("email has already been taken")
)

// store holds users in memory.  Every operation is a single critical
// section so check-then-act sequences cannot interleave.
type store struct {
	lock   sync.Mutex
	nextID int64
	users  map[int64]openapi.User
	emails map[string]int64
}

func newStore(firstID int64) *store {
	return &store{
		nextID: firstID,
		users:  map[int64]openapi.User{},
		emails: map[string]int64{},
	}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

// emailTakenLocked returns true if the email belongs to a user other than id.
func (s *store) emailTakenLocked(email string, id int64) bool {
	owner, ok := s.emails[emailKey(email)]

	return ok && owner != id
}

func (s *store) emailTaken(email string, id int64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.emailTakenLocked(email, id)
}

// list returns a page of users, newest first, and the total count.
func (s *store) list(page, perPage int) (openapi.Users, int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	users := make(openapi.Users, 0, len(s.users))

	for _, user := range s.users {
		users = append(users, user)
	}

	slices.SortFunc(users, func(a, b openapi.User) int {
		return cmp.Compare(b.Id, a.Id)
	})

	total := len(users)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return users[start:end], total
}

func (s *store) get(id int64) (openapi.User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]
	if !ok {
		return openapi.User{}, errNotFound
	}

	return user, nil
}

func (s *store) create(in openapi.UserCreate) (openapi.User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.emailTakenLocked(in.Email, 0) {
		return openapi.User{}, errEmailTaken
	}

	user := openapi.User{
		Id:     s.nextID,
		Name:   in.Name,
		Email:  in.Email,
		Gender: in.Gender,
		Status: in.Status,
	}

	s.nextID++

	s.users[user.Id] = user
	s.emails[emailKey(user.Email)] = user.Id

	return user, nil
}

// update applies the mutation to a copy of the user and commits it.
func (s *store) update(id int64, mutate func(*openapi.User)) (openapi.User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	current, ok := s.users[id]
	if !ok {
		return openapi.User{}, errNotFound
	}

	updated := current
	mutate(&updated)

	updated.Id = id

	if s.emailTakenLocked(updated.Email, id) {
		return openapi.User{}, errEmailTaken
	}

	delete(s.emails, emailKey(current.Email))

	s.users[id] = updated
	s.emails[emailKey(updated.Email)] = id

	return updated, nil
}

func (s *store) delete(id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]
	if !ok {
		return errNotFound
	}

	delete(s.users, id)
	delete(s.emails, emailKey(user.Email))

	return nil
}
