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
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
	"github.com/unikorn-cloud/users-conformance/test/api"
)

const concurrency = 5

// runConcurrently runs fn once per worker and returns the statuses in
// worker order.
func runConcurrently(workers int, fn func(i int) int) []int {
	statuses := make([]int, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer GinkgoRecover()
			defer wg.Done()

			statuses[i] = fn(i)
		}()
	}

	wg.Wait()

	return statuses
}

var _ = Describe("Concurrency and Performance", func() {
	Context("When performing concurrent operations", func() {
		Describe("Given two simultaneous deletes of one user", func() {
			It("should succeed exactly once", func() {
				created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				statuses := runConcurrently(2, func(int) int {
					resp, err := client.DeleteUser(ctx, created.Id)
					Expect(err).NotTo(HaveOccurred())

					return resp.StatusCode
				})

				Expect(statuses).To(ConsistOf(http.StatusNoContent, http.StatusNotFound))
			})
		})

		Describe("Given multiple simultaneous creation requests", func() {
			It("should create every user with a unique identifier", func() {
				payloads := make([]openapi.UserCreate, concurrency)

				for i := range payloads {
					payloads[i] = api.NewUserPayload(generator).Build()
				}

				ids := make([]int64, concurrency)

				statuses := runConcurrently(concurrency, func(i int) int {
					resp, err := client.CreateUser(ctx, payloads[i])
					Expect(err).NotTo(HaveOccurred())

					if user, err := resp.User(); err == nil {
						ids[i] = user.Id
					}

					return resp.StatusCode
				})

				for _, id := range ids {
					if id > 0 {
						DeferCleanup(func(ctx SpecContext) {
							api.DeleteUserQuietly(client, ctx, id)
						})
					}
				}

				for _, status := range statuses {
					Expect(status).To(Equal(http.StatusCreated))
				}

				Expect(ids).To(HaveLen(concurrency))

				unique := map[int64]struct{}{}
				for _, id := range ids {
					unique[id] = struct{}{}
				}

				Expect(unique).To(HaveLen(concurrency))
			})
		})

		Describe("Given concurrent reads during an update", func() {
			It("should only ever return a complete record", func() {
				created := api.CreateUserWithCleanup(client, ctx, api.NewUserPayload(generator).Build())

				replacement := api.NewUserPayload(generator).Build()

				before := openapi.UserCreate{
					Name:   created.Name,
					Email:  created.Email,
					Gender: created.Gender,
					Status: created.Status,
				}

				runConcurrently(concurrency, func(i int) int {
					if i == 0 {
						resp, err := client.ReplaceUser(ctx, created.Id, replacement)
						Expect(err).NotTo(HaveOccurred())

						return resp.StatusCode
					}

					resp, err := client.GetUser(ctx, created.Id)
					Expect(err).NotTo(HaveOccurred())

					user := api.ExpectUser(resp, http.StatusOK)

					current := openapi.UserCreate{
						Name:   user.Name,
						Email:  user.Email,
						Gender: user.Gender,
						Status: user.Status,
					}

					Expect(current).To(BeElementOf(before, replacement))

					return resp.StatusCode
				})
			})
		})
	})

	Context("When measuring responsiveness", func() {
		Describe("Given a simple read", func() {
			It("should respond within the request timeout", func() {
				resp, err := client.ListUsers(ctx, nil)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				Expect(resp.Duration).To(BeNumerically("<", config.RequestTimeout))
				Expect(resp.Duration).To(BeNumerically(">", time.Duration(0)))
			})
		})
	})
})
