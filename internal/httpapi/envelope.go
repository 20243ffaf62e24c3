// envelope.go
//
// A scalable, high performance drop-in replacement for the jam-build nodejs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-propsdb.
// jam-build-propsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-propsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-propsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package httpapi wires the query façade to a Fiber HTTP surface: the
// four routes, the discriminated {data}/{error} response envelope, and
// the webhook secret header check.
package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sandpiper-dev/igdbmatch/internal/types"
)

// dataResponse wraps a successful payload; nil Data is valid (GetMetadata's
// no-match case).
type dataResponse struct {
	Data interface{} `json:"data"`
}

// errorResponse wraps an application-level error message.
type errorResponse struct {
	Error string `json:"error"`
}

func sendData(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(dataResponse{Data: data})
}

// sendError always answers 200 with an {error} envelope: application-level
// errors are reported in the body, never via HTTP status, matching the
// envelope discipline of the rest of the API.
func sendError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(errorResponse{Error: message})
}

// handleError maps a returned error to the envelope: a *types.CustomError
// becomes its message in an {error} envelope; anything else is an
// unexpected failure surfaced the same way, so a caller always gets JSON.
func handleError(c *fiber.Ctx, err error) error {
	if ce, ok := err.(*types.CustomError); ok {
		return sendError(c, ce.Message)
	}
	return sendError(c, err.Error())
}
