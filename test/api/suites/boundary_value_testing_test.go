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

var _ = Describe("Boundary Value Testing", func() {
	Context("When testing name length boundaries", func() {
		DescribeTable("should accept names within the limit",
			func(length int) {
				user := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).WithName(fixtures.RepeatName(length)).Build())

				Expect(user.Name).To(HaveLen(length))
			},
			Entry("a single character", 1),
			Entry("100 characters", 100),
		)

		It("should reject a name of 256 characters with a length message", func() {
			resp, err := client.CreateUser(ctx, api.NewUserPayload(generator).WithName(fixtures.RepeatName(256)).Build())
			Expect(err).NotTo(HaveOccurred())

			api.ExpectFieldError(resp, fixtures.FieldName, "too long")
		})

		It("should reject an over long name in a partial update", func() {
			created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

			resp, err := client.UpdateUser(ctx, created.Id, openapi.UserPatch{Name: openapi.Some(fixtures.RepeatName(256))})
			Expect(err).NotTo(HaveOccurred())

			api.ExpectFieldErrors(resp, fixtures.FieldName)
		})
	})

	Context("When testing enumeration boundaries", func() {
		DescribeTable("should accept every gender and status",
			func(gender openapi.Gender, status openapi.Status) {
				payload := api.NewUserPayload(generator).WithGender(gender).WithStatus(status).Build()

				user := api.CreateUserWithCleanup(client, ctx, payload)

				Expect(user.Gender).To(Equal(gender))
				Expect(user.Status).To(Equal(status))
			},
			Entry("male and active", openapi.GenderMale, openapi.StatusActive),
			Entry("male and inactive", openapi.GenderMale, openapi.StatusInactive),
			Entry("female and active", openapi.GenderFemale, openapi.StatusActive),
			Entry("female and inactive", openapi.GenderFemale, openapi.StatusInactive),
		)

		It("should reject an empty gender", func() {
			resp, err := client.CreateUser(ctx, api.NewUserPayload(generator).WithGender("").Build())
			Expect(err).NotTo(HaveOccurred())

			api.ExpectStatus(resp, http.StatusUnprocessableEntity)
			api.ExpectFieldErrors(resp, fixtures.FieldGender)
		})
	})
})
