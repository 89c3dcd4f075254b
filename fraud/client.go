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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

var _ Detector = (*httpClient)(nil)

// httpClient calls the fraud detection service over its multipart HTTP interface.
type httpClient struct {
	address string
	client  *http.Client
}

// NewHTTPClient creates a client for the fraud detection service at the given address.
func NewHTTPClient(address string, timeout time.Duration) Detector {
	return &httpClient{
		address: strings.TrimSuffix(address, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// errorResponse is the service's failure body, e.g. when no models are loaded.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *httpClient) Check(ctx context.Context, image io.Reader, filename string, contentType string) (*Result, error) {
	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	// the service only accepts parts declaring an image MIME type, so the default
	// octet-stream part of CreateFormFile won't do
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, image); err != nil {
		return nil, err
	}
	// heatmaps are a debugging aid of the service's web UI, the node has no use for them
	if err = form.WriteField("save_heatmap", "false"); err != nil {
		return nil, err
	}
	if err = form.Close(); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address+"/verify", body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", form.FormDataContentType())

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var failure errorResponse
		_ = json.NewDecoder(response.Body).Decode(&failure)
		if failure.Detail == "" {
			failure.Detail = fmt.Sprintf("HTTP %d", response.StatusCode)
		}
		if response.StatusCode == http.StatusServiceUnavailable {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, failure.Detail)
		}
		return nil, fmt.Errorf("fraud check failed: %s", failure.Detail)
	}
	result := &Result{}
	if err = json.NewDecoder(response.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}
	return result, nil
}
