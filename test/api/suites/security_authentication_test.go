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

var _ = Describe("Security and Authentication", func() {
	Context("When authenticating API requests", func() {
		Describe("Given a valid token", func() {
			It("should reach the users collection", func() {
				resp, err := client.ListUsers(ctx, nil)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)

				_, err = resp.Users()
				Expect(err).NotTo(HaveOccurred())
			})
		})

		Describe("Given an invalid token", func() {
			It("should reject a write", func() {
				client.SetAuthToken("invalid-token")

				resp, err := client.CreateUser(ctx, api.NewUserPayload(generator).Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusUnauthorized)

				message, err := resp.Message()
				Expect(err).NotTo(HaveOccurred())
				Expect(message.Message).NotTo(BeEmpty())
			})
		})

		Describe("Given no token", func() {
			It("should reject a write", func() {
				client.SetAuthToken("")

				resp, err := client.CreateUser(ctx, api.NewUserPayload(generator).Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusUnauthorized)
			})
		})
	})
})
