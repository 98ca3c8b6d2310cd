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
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

const (
	messageNotFound   = "Resource not found"
	messageAuthFailed = "Authentication failed"
	messageBadRequest = "Problems parsing JSON"
)

type handler struct {
	store     *store
	validator *userValidator
}

func (h *handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func writeJSONResponse(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logr.FromContextOrDiscard(r.Context()).Error(err, "unable to marshal response body")
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(data); err != nil {
		logr.FromContextOrDiscard(r.Context()).Error(err, "unable to write response body")
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSONResponse(w, r, status, &openapi.Message{Message: message})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, r, http.StatusNotFound, messageNotFound)
}

// userID parses the path ID, anything unparseable cannot exist.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// queryInt returns a positive integer parameter or the default.
func queryInt(r *http.Request, name string, def int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < 1 {
		return def
	}

	return value
}

func decodeBody[T any](r *http.Request) (T, error) {
	var out T

	if err := json.NewDecoder(r.Body).Decode(&out); err != nil {
		return out, err
	}

	return out, nil
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := min(queryInt(r, "per_page", defaultPerPage), maxPerPage)

	users, total := h.store.list(page, perPage)

	pages := int(math.Ceil(float64(total) / float64(perPage)))

	w.Header().Set("X-Pagination-Total", strconv.Itoa(total))
	w.Header().Set("X-Pagination-Pages", strconv.Itoa(pages))
	w.Header().Set("X-Pagination-Page", strconv.Itoa(page))
	w.Header().Set("X-Pagination-Limit", strconv.Itoa(perPage))

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, users)
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		notFound(w, r)
		return
	}

	user, err := h.store.get(id)
	if err != nil {
		notFound(w, r)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, user)
}

// validate checks the named fields, or all when none are given, and email
// uniqueness against users other than id.
func (h *handler) validate(in userInput, id int64, fields ...string) (openapi.ErrorEntries, error) {
	entries, err := h.validator.check(in, fields...)
	if err != nil {
		return nil, err
	}

	checkEmail := len(fields) == 0
	for _, field := range fields {
		if field == "Email" {
			checkEmail = true
		}
	}

	if checkEmail && !hasField(entries, fieldEmail) && h.store.emailTaken(in.Email, id) {
		entries = append(entries, openapi.ErrorEntry{Field: fieldEmail, Message: messageTaken})
	}

	return entries, nil
}

// commit translates store errors into responses.
func (h *handler) commit(w http.ResponseWriter, r *http.Request, status int, user openapi.User, err error) {
	switch {
	case errors.Is(err, errNotFound):
		notFound(w, r)
	case errors.Is(err, errEmailTaken):
		writeJSONResponse(w, r, http.StatusUnprocessableEntity, openapi.ErrorEntries{{Field: fieldEmail, Message: messageTaken}})
	case err != nil:
		logr.FromContextOrDiscard(r.Context()).Error(err, "unable to store user")
		w.WriteHeader(http.StatusInternalServerError)
	default:
		writeJSONResponse(w, r, status, user)
	}
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	request, err := decodeBody[openapi.UserCreate](r)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, messageBadRequest)
		return
	}

	in := inputFromCreate(request)

	entries, err := h.validate(in, 0)
	if err != nil {
		h.commit(w, r, 0, openapi.User{}, err)
		return
	}

	if len(entries) != 0 {
		writeJSONResponse(w, r, http.StatusUnprocessableEntity, entries)
		return
	}

	user, err := h.store.create(in.create())

	h.commit(w, r, http.StatusCreated, user, err)
}

func (h *handler) replaceUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		notFound(w, r)
		return
	}

	if _, err := h.store.get(id); err != nil {
		notFound(w, r)
		return
	}

	request, err := decodeBody[openapi.UserCreate](r)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, messageBadRequest)
		return
	}

	in := inputFromCreate(request)

	entries, err := h.validate(in, id)
	if err != nil {
		h.commit(w, r, 0, openapi.User{}, err)
		return
	}

	if len(entries) != 0 {
		writeJSONResponse(w, r, http.StatusUnprocessableEntity, entries)
		return
	}

	user, err := h.store.update(id, func(user *openapi.User) {
		replacement := in.create()

		user.Name = replacement.Name
		user.Email = replacement.Email
		user.Gender = replacement.Gender
		user.Status = replacement.Status
	})

	h.commit(w, r, http.StatusOK, user, err)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		notFound(w, r)
		return
	}

	current, err := h.store.get(id)
	if err != nil {
		notFound(w, r)
		return
	}

	patch, err := decodeBody[openapi.UserPatch](r)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, messageBadRequest)
		return
	}

	if patch.Empty() {
		writeJSONResponse(w, r, http.StatusOK, current)
		return
	}

	in, fields := inputFromUser(current).apply(patch)

	entries, err := h.validate(in, id, fields...)
	if err != nil {
		h.commit(w, r, 0, openapi.User{}, err)
		return
	}

	if len(entries) != 0 {
		writeJSONResponse(w, r, http.StatusUnprocessableEntity, entries)
		return
	}

	user, err := h.store.update(id, func(user *openapi.User) {
		if v, ok := patch.Name.Get(); ok {
			user.Name = v
		}

		if v, ok := patch.Email.Get(); ok {
			user.Email = v
		}

		if v, ok := patch.Gender.Get(); ok {
			user.Gender = v
		}

		if v, ok := patch.Status.Get(); ok {
			user.Status = v
		}
	})

	h.commit(w, r, http.StatusOK, user, err)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		notFound(w, r)
		return
	}

	if err := h.store.delete(id); err != nil {
		notFound(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
