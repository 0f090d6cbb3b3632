/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package backend talks to the recipe generation service.
package backend

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	gojsonschema "github.com/xeipuuv/gojsonschema"

	"aichef/internal/domain"
	applog "aichef/internal/log"
)

// DefaultEndpoint is where the service listens when run locally.
const DefaultEndpoint = "http://127.0.0.1:8000/generate-recipe"

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

//go:embed recipe.schema.json
var recipeSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(recipeSchema)

// Client sends ingredient lists to the generation endpoint. It keeps no
// state between calls and is safe for concurrent use.
type Client struct {
	Endpoint string
	client   *http.Client
	log      *slog.Logger
}

// NewClient creates a client for endpoint. A zero timeout means none.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: timeout},
		log:      applog.WithComponent("backend"),
	}
}

type generateRequest struct {
	Ingredients string `json:"ingredients"`
}

type generateResponse struct {
	Recipe *string `json:"recipe"`
}

// Generate asks the service for a recipe made from ingredients.
func (c *Client) Generate(ctx context.Context, ingredients string) (domain.Recipe, error) {
	text := strings.TrimSpace(ingredients)
	if text == "" {
		return domain.Recipe{}, &ValidationError{Msg: EmptyInputMessage}
	}
	ctx = applog.ContextWithRequestID(ctx, uuid.NewString())
	l := applog.WithOperation(c.log, "generate")
	start := time.Now()

	body, err := json.Marshal(generateRequest{Ingredients: text})
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("encode request: %w", err)
	}
	status, raw, err := c.do(ctx, http.MethodPost, c.Endpoint, body)
	if err != nil {
		l.WarnContext(ctx, "request failed", slog.Any("err", err))
		return domain.Recipe{}, err
	}
	if status < 200 || status >= 300 {
		msg := serverDetail(raw)
		l.WarnContext(ctx, "server rejected request", slog.Int("status", status), slog.String("detail", msg))
		return domain.Recipe{}, &ServerError{Status: status, Msg: msg}
	}
	r, err := decodeRecipe(raw)
	if err != nil {
		l.WarnContext(ctx, "unreadable recipe payload", slog.Any("err", err))
		return domain.Recipe{}, err
	}
	l.InfoContext(ctx, "recipe generated",
		slog.String("name", r.Name),
		slog.Int("ingredients", len(r.Ingredients)),
		slog.Duration("took", time.Since(start)))
	return r, nil
}

// Ping fetches the service root and returns its status message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	root := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	status, raw, err := c.do(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &ServerError{Status: status, Msg: serverDetail(raw)}
	}
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Message == "" {
		return strings.TrimSpace(string(raw)), nil
	}
	return env.Message, nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id := applog.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return resp.StatusCode, raw, nil
}

// serverDetail extracts "detail" from an error body. Non-string details are
// rendered as compact JSON.
func serverDetail(raw []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Detail) == 0 {
		return GenericServerMessage
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		if s == "" {
			return GenericServerMessage
		}
		return s
	}
	if string(env.Detail) == "null" {
		return GenericServerMessage
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, env.Detail); err != nil {
		return GenericServerMessage
	}
	return buf.String()
}

// decodeRecipe unwraps {"recipe": "<json string>"} into a Recipe.
func decodeRecipe(raw []byte) (domain.Recipe, error) {
	var env generateResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Recipe{}, &DecodeError{Stage: "envelope", Err: err}
	}
	if env.Recipe == nil {
		return domain.Recipe{}, &DecodeError{Stage: "envelope", Err: errors.New(`missing "recipe" string`)}
	}
	inner := []byte(*env.Recipe)
	if !json.Valid(inner) {
		var probe any
		err := json.Unmarshal(inner, &probe)
		return domain.Recipe{}, &DecodeError{Stage: "recipe", Err: err}
	}
	if err := validateRecipe(inner); err != nil {
		return domain.Recipe{}, &DecodeError{Stage: "schema", Err: err}
	}
	var r domain.Recipe
	if err := json.Unmarshal(inner, &r); err != nil {
		return domain.Recipe{}, &DecodeError{Stage: "recipe", Err: err}
	}
	return r.Normalized(), nil
}

func validateRecipe(doc []byte) error {
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}
