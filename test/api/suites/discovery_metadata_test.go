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
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	usersclient "github.com/unikorn-cloud/users-conformance/pkg/client"
	"github.com/unikorn-cloud/users-conformance/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Discovery and Metadata", func() {
	Context("When paging through users", func() {
		Describe("Given an explicit page size", func() {
			It("should honour the page size and describe the pagination", func() {
				for range 2 {
					api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())
				}

				resp, err := client.ListUsers(ctx, &usersclient.ListUsersParams{Page: ptr.To(1), PerPage: ptr.To(2)})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)

				users, err := resp.Users()
				Expect(err).NotTo(HaveOccurred())
				Expect(users).To(HaveLen(2))

				Expect(resp.Header.Get("X-Pagination-Limit")).To(Equal("2"))
				Expect(resp.Header.Get("X-Pagination-Page")).To(Equal("1"))

				total, err := strconv.Atoi(resp.Header.Get("X-Pagination-Total"))
				Expect(err).NotTo(HaveOccurred())
				Expect(total).To(BeNumerically(">=", 2))
			})

			It("should list the newest users first", func() {
				first := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())
				second := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				resp, err := client.ListUsers(ctx, &usersclient.ListUsersParams{PerPage: ptr.To(100)})
				Expect(err).NotTo(HaveOccurred())

				users, err := resp.Users()
				Expect(err).NotTo(HaveOccurred())

				index := func(id int64) int {
					for i := range users {
						if users[i].Id == id {
							return i
						}
					}

					return -1
				}

				Expect(index(second.Id)).To(BeNumerically(">=", 0))
				Expect(index(first.Id)).To(BeNumerically(">", index(second.Id)))
			})
		})
	})
})
