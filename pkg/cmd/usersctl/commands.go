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

package usersctl

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unikorn-cloud/users-conformance/pkg/client"
	"github.com/unikorn-cloud/users-conformance/pkg/fixtures"
	"github.com/unikorn-cloud/users-conformance/pkg/openapi"

	"k8s.io/utils/ptr"
)

func (c *command) printer(cmd *cobra.Command) *printer {
	return &printer{
		out:    cmd.OutOrStdout(),
		format: c.options.Output,
	}
}

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: user ID %q is not an integer", ErrInvalidArgument, arg)
	}

	return id, nil
}

// printUser prints a user for the expected status, or the failure.
func printUser(p *printer, resp *client.Response, status int) error {
	if resp.StatusCode != status {
		return p.failure(resp)
	}

	user, err := resp.User()
	if err != nil {
		return err
	}

	return p.user(user)
}

func (c *command) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Checks the users collection is reachable with the configured token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := c.printer(cmd)

			resp, err := c.client.ListUsers(cmd.Context(), nil)
			if err != nil {
				return err
			}

			if resp.StatusCode != http.StatusOK {
				return p.failure(resp)
			}

			users, err := resp.Users()
			if err != nil {
				return err
			}

			return p.ping(resp, users)
		},
	}
}

func (c *command) listCommand() *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list [--page N] [--per-page N]",
		Short: "Lists users, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := c.printer(cmd)

			params := &client.ListUsersParams{}

			if cmd.Flags().Changed("page") {
				params.Page = ptr.To(page)
			}

			if cmd.Flags().Changed("per-page") {
				params.PerPage = ptr.To(perPage)
			}

			resp, err := c.client.ListUsers(cmd.Context(), params)
			if err != nil {
				return err
			}

			if resp.StatusCode != http.StatusOK {
				return p.failure(resp)
			}

			users, err := resp.Users()
			if err != nil {
				return err
			}

			return p.users(users)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to read")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Users per page")

	return cmd
}

func (c *command) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Reads a user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			resp, err := c.client.GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printUser(c.printer(cmd), resp, http.StatusOK)
		},
	}
}

// userFlags are the writable fields of a user.
type userFlags struct {
	name   string
	email  string
	gender string
	status string
}

func (f *userFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, fixtures.FieldName, "", "User name")
	cmd.Flags().StringVar(&f.email, fixtures.FieldEmail, "", "User email")
	cmd.Flags().StringVar(&f.gender, fixtures.FieldGender, "", "User gender, male or female")
	cmd.Flags().StringVar(&f.status, fixtures.FieldStatus, "", "User status, active or inactive")
}

// apply overlays explicitly set flags on the payload.  Values are sent as
// given so the provider's validation can be exercised.
func (f *userFlags) apply(cmd *cobra.Command, payload *openapi.UserCreate) {
	if cmd.Flags().Changed(fixtures.FieldName) {
		payload.Name = f.name
	}

	if cmd.Flags().Changed(fixtures.FieldEmail) {
		payload.Email = f.email
	}

	if cmd.Flags().Changed(fixtures.FieldGender) {
		payload.Gender = openapi.Gender(f.gender)
	}

	if cmd.Flags().Changed(fixtures.FieldStatus) {
		payload.Status = openapi.Status(f.status)
	}
}

// patch returns only the explicitly set flags.
func (f *userFlags) patch(cmd *cobra.Command) openapi.UserPatch {
	var patch openapi.UserPatch

	if cmd.Flags().Changed(fixtures.FieldName) {
		patch.Name = openapi.Some(f.name)
	}

	if cmd.Flags().Changed(fixtures.FieldEmail) {
		patch.Email = openapi.Some(f.email)
	}

	if cmd.Flags().Changed(fixtures.FieldGender) {
		patch.Gender = openapi.Some(openapi.Gender(f.gender))
	}

	if cmd.Flags().Changed(fixtures.FieldStatus) {
		patch.Status = openapi.Some(openapi.Status(f.status))
	}

	return patch
}

func (c *command) createCommand() *cobra.Command {
	var (
		fields userFlags
		random bool
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "create [--random [--seed N]] [--name ...] [--email ...] [--gender ...] [--status ...]",
		Short: "Creates a user.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var payload openapi.UserCreate

			if random {
				var opts []fixtures.Option

				if cmd.Flags().Changed("seed") {
					opts = append(opts, fixtures.WithSeed(seed))
				}

				payload = fixtures.New(opts...).User()
			}

			fields.apply(cmd, &payload)

			resp, err := c.client.CreateUser(cmd.Context(), payload)
			if err != nil {
				return err
			}

			return printUser(c.printer(cmd), resp, http.StatusCreated)
		},
	}

	fields.addFlags(cmd)

	cmd.Flags().BoolVar(&random, "random", false, "Start from a randomly generated valid user")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for --random")

	return cmd
}

func (c *command) replaceCommand() *cobra.Command {
	var fields userFlags

	cmd := &cobra.Command{
		Use:   "replace ID --name ... --email ... --gender ... --status ...",
		Short: "Replaces every field of a user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			var payload openapi.UserCreate

			fields.apply(cmd, &payload)

			resp, err := c.client.ReplaceUser(cmd.Context(), id, payload)
			if err != nil {
				return err
			}

			return printUser(c.printer(cmd), resp, http.StatusOK)
		},
	}

	fields.addFlags(cmd)

	return cmd
}

func (c *command) patchCommand() *cobra.Command {
	var fields userFlags

	cmd := &cobra.Command{
		Use:   "patch ID [--name ...] [--email ...] [--gender ...] [--status ...]",
		Short: "Updates only the given fields of a user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			resp, err := c.client.UpdateUser(cmd.Context(), id, fields.patch(cmd))
			if err != nil {
				return err
			}

			return printUser(c.printer(cmd), resp, http.StatusOK)
		},
	}

	fields.addFlags(cmd)

	return cmd
}

func (c *command) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Deletes a user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			resp, err := c.client.DeleteUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			if resp.StatusCode != http.StatusNoContent {
				return c.printer(cmd).failure(resp)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %d deleted\n", id)

			return err
		},
	}
}
