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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/unikorn-cloud/users-conformance/pkg/client"
	"github.com/unikorn-cloud/users-conformance/pkg/openapi"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type printer struct {
	out    io.Writer
	format string
}

func (p *printer) structured(v any) error {
	switch p.format {
	case outputJSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case outputYAML:
		encoder := yaml.NewEncoder(p.out)
		encoder.SetIndent(2)

		if err := encoder.Encode(v); err != nil {
			return err
		}

		return encoder.Close()
	}

	return nil
}

func (p *printer) newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(header)

	return t
}

func userRow(user *openapi.User) table.Row {
	return table.Row{user.Id, user.Name, user.Email, user.Gender, user.Status}
}

var userHeader = table.Row{"ID", "Name", "Email", "Gender", "Status"}

func (p *printer) users(users openapi.Users) error {
	if p.format != outputTable {
		return p.structured(users)
	}

	t := p.newTable(userHeader)

	for i := range users {
		t.AppendRow(userRow(&users[i]))
	}

	t.Render()

	return nil
}

func (p *printer) user(user *openapi.User) error {
	return p.users(openapi.Users{*user})
}

func (p *printer) errors(entries openapi.ErrorEntries) error {
	if p.format != outputTable {
		return p.structured(entries)
	}

	t := p.newTable(table.Row{"Field", "Message"})

	for _, entry := range entries {
		t.AppendRow(table.Row{entry.Field, entry.Message})
	}

	t.Render()

	return nil
}

// failure prints whatever the provider said and returns an error carrying
// the status.
func (p *printer) failure(resp *client.Response) error {
	if resp.StatusCode == http.StatusUnprocessableEntity {
		if entries, err := resp.Errors(); err == nil {
			if err := p.errors(entries); err != nil {
				return err
			}

			return fmt.Errorf("%w: %d (trace ID: %s)", ErrUnexpectedStatus, resp.StatusCode, resp.TraceID)
		}
	}

	if message, err := resp.Message(); err == nil && message.Message != "" {
		if _, err := fmt.Fprintln(p.out, message.Message); err != nil {
			return err
		}
	} else if len(resp.Body) > 0 {
		if _, err := fmt.Fprintln(p.out, resp.String()); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w: %d (trace ID: %s)", ErrUnexpectedStatus, resp.StatusCode, resp.TraceID)
}

func (p *printer) ping(resp *client.Response, users openapi.Users) error {
	summary := map[string]string{
		"status":   strconv.Itoa(resp.StatusCode),
		"users":    strconv.Itoa(len(users)),
		"duration": resp.Duration.String(),
		"traceID":  resp.TraceID,
	}

	if p.format != outputTable {
		return p.structured(summary)
	}

	t := p.newTable(table.Row{"Status", "Users", "Duration", "Trace ID"})
	t.AppendRow(table.Row{summary["status"], summary["users"], summary["duration"], summary["traceID"]})
	t.Render()

	return nil
}
