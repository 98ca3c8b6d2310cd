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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/users-conformance/pkg/fixtures"
	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
	"github.com/unikorn-cloud/users-conformance/test/api"
)

var _ = Describe("User Updates", func() {
	Context("When replacing a user", func() {
		Describe("Given the user exists", func() {
			It("should replace every field and keep the ID", func() {
				created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				replacement := api.NewUserPayload(generator).Build()

				resp, err := client.ReplaceUser(ctx, created.Id, replacement)
				Expect(err).NotTo(HaveOccurred())

				updated := api.ExpectUser(resp, http.StatusOK)
				Expect(updated.Id).To(Equal(created.Id))
				api.ExpectUserMatches(updated, replacement)

				fetched := api.GetUserExpectingOK(client, ctx, created.Id)
				api.ExpectUserMatches(fetched, replacement)
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return not found", func() {
				resp, err := client.ReplaceUser(ctx, nonexistentUserID, api.NewUserPayload(generator).Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectNotFound(resp)
			})
		})
	})

	Context("When partially updating a user", func() {
		Describe("Given a subset of fields", func() {
			It("should change only those fields", func() {
				created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				patch := generator.PartialUpdate(fixtures.FieldName, fixtures.FieldStatus)

				resp, err := client.UpdateUser(ctx, created.Id, patch)
				Expect(err).NotTo(HaveOccurred())

				updated := api.ExpectUser(resp, http.StatusOK)
				Expect(updated.Name).To(Equal(patch.Name.OrElse("")))
				Expect(updated.Status).To(Equal(patch.Status.OrElse("")))

				fetched := api.GetUserExpectingOK(client, ctx, created.Id)
				Expect(fetched.Name).To(Equal(updated.Name))
				Expect(fetched.Status).To(Equal(updated.Status))
				Expect(fetched.Email).To(Equal(created.Email))
				Expect(fetched.Gender).To(Equal(created.Gender))
			})

			It("should update every field when all are sent", func() {
				created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				patch := generator.PartialUpdate()

				resp, err := client.UpdateUser(ctx, created.Id, patch)
				Expect(err).NotTo(HaveOccurred())

				updated := api.ExpectUser(resp, http.StatusOK)
				Expect(updated.Id).To(Equal(created.Id))
				Expect(updated.Email).To(Equal(patch.Email.OrElse("")))
				Expect(updated.Gender).To(Equal(patch.Gender.OrElse("")))
			})
		})

		Describe("Given invalid field values", func() {
			It("should reject the update naming each field", func() {
				created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				patch := openapi.UserPatch{
					Email:  openapi.Some("invalid-email"),
					Gender: openapi.Some(fixtures.InvalidGender),
				}

				resp, err := client.UpdateUser(ctx, created.Id, patch)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, fixtures.FieldEmail, fixtures.FieldGender)

				fetched := api.GetUserExpectingOK(client, ctx, created.Id)
				Expect(fetched).To(Equal(created))
			})
		})

		Describe("Given the user does not exist", func() {
			It("should return not found", func() {
				resp, err := client.UpdateUser(ctx, nonexistentUserID, generator.PartialUpdate(fixtures.FieldName))
				Expect(err).NotTo(HaveOccurred())

				api.ExpectNotFound(resp)
			})
		})
	})
})
