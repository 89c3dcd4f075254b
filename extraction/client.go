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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var _ Extractor = (*httpClient)(nil)

// httpClient calls the OCR extraction service over its multipart HTTP interface.
type httpClient struct {
	address string
	client  *http.Client
}

// NewHTTPClient creates a client for the extraction service at the given address.
func NewHTTPClient(address string, timeout time.Duration) Extractor {
	return &httpClient{
		address: strings.TrimSuffix(address, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type extractResponse struct {
	Success   bool    `json:"success"`
	Extracted *Result `json:"extracted"`
	Message   string  `json:"message"`
}

func (c *httpClient) Extract(ctx context.Context, image io.Reader, filename string, platformHint string) (*Result, error) {
	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("certificateFile", filename)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, image); err != nil {
		return nil, err
	}
	if platformHint != "" {
		if err = form.WriteField("platform", platformHint); err != nil {
			return nil, err
		}
	}
	if err = form.Close(); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address+"/extract", body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", form.FormDataContentType())

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	var parsed extractResponse
	if err = json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUnavailable, err)
	}
	if !parsed.Success || parsed.Extracted == nil {
		if parsed.Message == "" {
			parsed.Message = fmt.Sprintf("HTTP %d", response.StatusCode)
		}
		return nil, fmt.Errorf("extraction failed: %s", parsed.Message)
	}
	return parsed.Extracted, nil
}
