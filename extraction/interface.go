/*
 * Credport node
 * Copyright (C) 2025 Credport community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package extraction

import (
	"context"
	"errors"
	"io"
)

// ErrUnavailable is returned when the extraction service cannot be reached.
var ErrUnavailable = errors.New("extraction service unavailable")

// Result holds the credential fields read from a certificate image. Fields the service could
// not recognize are empty; the caller treats all of them as suggestions to be confirmed.
type Result struct {
	Issuer    string `json:"issuer"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	IssueDate string `json:"issueDate"`
}

// Extractor reads credential fields from an uploaded certificate image using the external
// OCR extraction service.
type Extractor interface {
	// Extract submits the certificate image for field extraction. platformHint optionally names
	// the issuing platform (e.g. "coursera") to steer the service's extraction rules.
	Extract(ctx context.Context, image io.Reader, filename string, platformHint string) (*Result, error)
}
