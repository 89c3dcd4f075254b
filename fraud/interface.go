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

package fraud

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrUnavailable is returned when the fraud detection service cannot be reached
// or has no models loaded.
var ErrUnavailable = errors.New("fraud detection service unavailable")

// labelForged is the label the detection service assigns to certificates it considers forged.
const labelForged = "forged"

// Result holds the fraud detection verdict for an uploaded certificate image.
type Result struct {
	// Label is the service's verdict, "authentic" or "forged".
	Label string `json:"label"`
	// Confidence is the service's confidence in the verdict, between 0 and 1.
	Confidence float64 `json:"confidence"`
	// ProbabilityForged and ProbabilityAuthentic are the raw ensemble scores.
	ProbabilityForged    float64 `json:"probability_forged"`
	ProbabilityAuthentic float64 `json:"probability_authentic"`
	// Reasons lists the human-readable findings behind the verdict.
	Reasons []string `json:"reasons"`
}

// Forged returns whether the service labeled the certificate as forged.
func (r Result) Forged() bool {
	return strings.EqualFold(r.Label, labelForged)
}

// Detector scores uploaded certificate images for forgery using the external
// fraud detection service. A verdict is advisory: it informs the owner before
// anchoring, it does not block any operation.
type Detector interface {
	// Check submits the certificate image for fraud analysis. contentType is the MIME type
	// of the image; the service rejects uploads that do not declare an image type.
	Check(ctx context.Context, image io.Reader, filename string, contentType string) (*Result, error)
}
