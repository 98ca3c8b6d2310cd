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

// Package api provides integration test utilities for the users API.
//
// # Separate Client Implementation
//
// The suites drive the provider through a hand written client rather than
// one generated from the OpenAPI document.  Any legitimate change to the
// provider's contract must have a compensating change in the client, making
// API evolution explicit and reviewable.
//
// The harness adds integration test specific behaviour on top:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Response validation against the embedded OpenAPI document
//   - Fixtures that delete what they create when a spec ends
//
// # Hermetic Runs
//
// When no API_BASE_URL is configured the suites start an in-process fake of
// the users API, so the whole suite runs without network access or
// credentials.
package api
