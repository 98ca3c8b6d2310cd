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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/users-conformance/pkg/client"
	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

// ExpectStatus asserts the response status is one of those given, on failure
// the body and trace ID are reported so the request can be found upstream.
func ExpectStatus(resp *client.Response, statuses ...int) {
	GinkgoHelper()

	Expect(resp).NotTo(BeNil())

	if len(statuses) == 0 {
		Fail("ExpectStatus requires at least one status")
	}

	Expect(statuses).To(ContainElement(resp.StatusCode),
		"unexpected status %d for %s %s, body: %s (trace ID: %s)", resp.StatusCode, resp.Request.Method, resp.Request.URL.Path, resp.String(), resp.TraceID)
}

// ExpectUser asserts a successful response carries a user and returns it.
func ExpectUser(resp *client.Response, status int) *openapi.User {
	GinkgoHelper()

	ExpectStatus(resp, status)

	user, err := resp.User()
	Expect(err).NotTo(HaveOccurred())

	return user
}

// ExpectUserMatches asserts every field of the payload was stored verbatim.
func ExpectUserMatches(user *openapi.User, expected openapi.UserCreate) {
	GinkgoHelper()

	Expect(user.Id).To(BeNumerically(">", 0))
	Expect(user.Name).To(Equal(expected.Name))
	Expect(user.Email).To(Equal(expected.Email))
	Expect(user.Gender).To(Equal(expected.Gender))
	Expect(user.Status).To(Equal(expected.Status))
}

// ExpectClosedEnumerations asserts gender and status are known values.
func ExpectClosedEnumerations(user *openapi.User) {
	GinkgoHelper()

	Expect(openapi.Genders()).To(ContainElement(user.Gender))
	Expect(openapi.Statuses()).To(ContainElement(user.Status))
}

// ExpectFieldErrors asserts a 422 response names every given field.
func ExpectFieldErrors(resp *client.Response, fields ...string) openapi.ErrorEntries {
	GinkgoHelper()

	ExpectStatus(resp, http.StatusUnprocessableEntity)

	entries, err := resp.Errors()
	Expect(err).NotTo(HaveOccurred())
	Expect(entries).NotTo(BeEmpty())

	for _, field := range fields {
		Expect(entries).To(ContainElement(HaveField("Field", field)), "expected a validation error for %q in %s", field, resp.String())
	}

	return entries
}

// ExpectFieldError asserts a 422 response has an entry for the field whose
// message contains the given text.
func ExpectFieldError(resp *client.Response, field, message string) {
	GinkgoHelper()

	entries := ExpectFieldErrors(resp, field)

	Expect(client.HasError(entries, field, message)).To(BeTrue(), "expected %q error containing %q in %s", field, message, resp.String())
}

// ExpectNotFound asserts a 404 whose body says not found.
func ExpectNotFound(resp *client.Response) {
	GinkgoHelper()

	ExpectStatus(resp, http.StatusNotFound)
	Expect(resp.NotFound()).To(BeTrue(), "expected a not found message, got %s", resp.String())
}

// CreateUserWithCleanup creates a user and schedules its deletion when the
// current spec ends.
func CreateUserWithCleanup(client client.Interface, ctx context.Context, payload openapi.UserCreate) *openapi.User {
	GinkgoHelper()

	resp, err := client.CreateUser(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	user := ExpectUser(resp, http.StatusCreated)

	userID := user.Id

	// Runs whether the spec passes or fails.
	DeferCleanup(func(ctx SpecContext) {
		DeleteUserQuietly(client, ctx, userID)
	})

	return user
}

// DeleteUserQuietly deletes a user, a user that is already gone is fine and
// any other failure is logged rather than failing the spec.
func DeleteUserQuietly(client client.Interface, ctx context.Context, userID int64) {
	resp, err := client.DeleteUser(ctx, userID)

	switch {
	case err != nil:
		GinkgoWriter.Printf("Warning: Failed to delete user %d: %v\n", userID, err)
	case resp.StatusCode == http.StatusNoContent:
		GinkgoWriter.Printf("Successfully deleted user: %d\n", userID)
	case resp.StatusCode == http.StatusNotFound:
	default:
		GinkgoWriter.Printf("Warning: Failed to delete user %d: status %d (trace ID: %s)\n", userID, resp.StatusCode, resp.TraceID)
	}
}

// GetUserExpectingOK reads a user back, asserting it exists.
func GetUserExpectingOK(client client.Interface, ctx context.Context, userID int64) *openapi.User {
	GinkgoHelper()

	resp, err := client.GetUser(ctx, userID)
	Expect(err).NotTo(HaveOccurred())

	user := ExpectUser(resp, http.StatusOK)
	Expect(user.Id).To(Equal(userID))

	return user
}
