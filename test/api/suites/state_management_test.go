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

	"github.com/unikorn-cloud/users-conformance/test/api"
)

var _ = Describe("State Management", func() {
	Context("When a user moves through its lifecycle", func() {
		Describe("Given create, read, update and delete in turn", func() {
			It("should reflect each transition", func() {
				payload := api.NewUserPayload(generator).Build()

				created := api.CreateUserWithCleanup(client, ctx, payload)
				api.ExpectUserMatches(api.GetUserExpectingOK(client, ctx, created.Id), payload)

				patch := generator.PartialUpdate()

				resp, err := client.UpdateUser(ctx, created.Id, patch)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				fetched := api.GetUserExpectingOK(client, ctx, created.Id)
				Expect(fetched.Name).To(Equal(patch.Name.OrElse("")))
				Expect(fetched.Email).To(Equal(patch.Email.OrElse("")))

				resp, err = client.DeleteUser(ctx, created.Id)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusNoContent)

				resp, err = client.GetUser(ctx, created.Id)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectNotFound(resp)
			})
		})

		Describe("Given a deleted user's email", func() {
			It("should allow it to be registered again", func() {
				payload := api.NewUserPayload(generator).Build()

				created := api.CreateUserWithCleanup(client, ctx, payload)

				resp, err := client.DeleteUser(ctx, created.Id)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusNoContent)

				recreated := api.CreateUserWithCleanup(client, ctx, payload)
				Expect(recreated.Email).To(Equal(payload.Email))
				Expect(recreated.Id).NotTo(Equal(created.Id))
			})
		})

		Describe("Given a user whose email changes", func() {
			It("should release the old email", func() {
				payload := api.NewUserPayload(generator).Build()

				created := api.CreateUserWithCleanup(client, ctx, payload)

				resp, err := client.ReplaceUser(ctx, created.Id, api.NewUserPayload(generator).Build())
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				api.CreateUserWithCleanup(client, ctx, payload)
			})
		})
	})
})
