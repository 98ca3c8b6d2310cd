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
	"github.com/unikorn-cloud/users-conformance/test/api"
)

var _ = Describe("User Creation", func() {
	Context("When creating a new user", func() {
		Describe("Given a valid user payload", func() {
			It("should create the user and echo every field", func() {
				payload := api.NewUserPayload(generator).Build()

				user := api.CreateUserWithCleanup(client, ctx, payload)

				api.ExpectUserMatches(user, payload)
			})

			It("should return the same user when read back", func() {
				payload := api.NewUserPayload(generator).Build()

				created := api.CreateUserWithCleanup(client, ctx, payload)

				fetched := api.GetUserExpectingOK(client, ctx, created.Id)
				Expect(fetched).To(Equal(created))
				api.ExpectUserMatches(fetched, payload)
			})

			It("should accept a name of 100 characters", func() {
				payload := api.NewUserPayload(generator).
					WithName(fixtures.RepeatName(100)).
					Build()

				user := api.CreateUserWithCleanup(client, ctx, payload)

				Expect(user.Name).To(HaveLen(100))
			})

			It("should preserve international characters", func() {
				payload := api.NewUserPayload(generator).
					WithName("Zoë Åsa Ñúñez").
					Build()

				user := api.CreateUserWithCleanup(client, ctx, payload)

				Expect(user.Name).To(Equal("Zoë Åsa Ñúñez"))
			})
		})

		Describe("Given an email that is already registered", func() {
			It("should reject the duplicate", func() {
				first := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				duplicate := api.NewUserPayload(generator).WithEmail(first.Email).Build()

				resp, err := client.CreateUser(ctx, duplicate)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldError(resp, fixtures.FieldEmail, "has already been taken")
			})
		})

		Describe("Given invalid user data", func() {
			DescribeTable("should reject the payload naming the offending field",
				func(build func(*api.UserPayloadBuilder) *api.UserPayloadBuilder, field string) {
					payload := build(api.NewUserPayload(generator)).Build()

					resp, err := client.CreateUser(ctx, payload)
					Expect(err).NotTo(HaveOccurred())

					api.ExpectFieldErrors(resp, field)
				},
				Entry("without an email",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.Without(fixtures.FieldEmail) },
					fixtures.FieldEmail),
				Entry("without a name",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.Without(fixtures.FieldName) },
					fixtures.FieldName),
				Entry("with an unknown gender",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.WithGender(fixtures.InvalidGender) },
					fixtures.FieldGender),
				Entry("with an unknown status",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.WithStatus(fixtures.InvalidStatus) },
					fixtures.FieldStatus),
				Entry("with a whitespace name",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.WithName(fixtures.WhitespaceName) },
					fixtures.FieldName),
				Entry("with an email missing the @",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.WithEmail(fixtures.InvalidEmail) },
					fixtures.FieldEmail),
				Entry("with a 256 character name",
					func(b *api.UserPayloadBuilder) *api.UserPayloadBuilder { return b.WithName(fixtures.RepeatName(256)) },
					fixtures.FieldName),
			)

			It("should reject a payload where every field is invalid", func() {
				resp, err := client.CreateUser(ctx, fixtures.InvalidUser())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusUnprocessableEntity)

				entries, err := resp.Errors()
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).NotTo(BeEmpty())
			})
		})
	})
})
