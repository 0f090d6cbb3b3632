/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"errors"
	"fmt"
)

// GenericServerMessage is shown when a failed response carries no usable detail.
const GenericServerMessage = "Something went wrong on the server."

// EmptyInputMessage is the validation message for blank input.
const EmptyInputMessage = "Please enter some ingredients."

// ValidationError reports input rejected before any request was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ServerError is a non-2xx response. Msg is the server's detail or GenericServerMessage.
type ServerError struct {
	Status int
	Msg    string
}

func (e *ServerError) Error() string { return e.Msg }

// DecodeError is a 2xx response whose body is not the expected recipe payload.
type DecodeError struct {
	Stage string // "envelope", "recipe" or "schema"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed %s in server response: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps a failure to reach the service at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Message returns the text to show the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	var se *ServerError
	var de *DecodeError
	var te *TransportError
	switch {
	case errors.As(err, &ve):
		return ve.Msg
	case errors.As(err, &se):
		if se.Msg == "" {
			return GenericServerMessage
		}
		return se.Msg
	case errors.As(err, &de):
		return de.Error()
	case errors.As(err, &te):
		return te.Err.Error()
	}
	return err.Error()
}

// Kind names the error class for logs and telemetry. It never includes user content.
func Kind(err error) string {
	var ve *ValidationError
	var se *ServerError
	var de *DecodeError
	var te *TransportError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &se):
		return "server"
	case errors.As(err, &de):
		return "decode"
	case errors.As(err, &te):
		return "transport"
	}
	return "unknown"
}
