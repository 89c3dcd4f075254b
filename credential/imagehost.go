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

package credential

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ImageStore removes uploaded certificate images from the external image host.
type ImageStore interface {
	// Remove deletes the image at the given URL.
	Remove(ctx context.Context, imageURL string) error
}

type httpImageStore struct {
	client *http.Client
}

// NewHTTPImageStore returns an ImageStore that deletes images with an HTTP DELETE on the image URL.
func NewHTTPImageStore(timeout time.Duration) ImageStore {
	return &httpImageStore{
		client: &http.Client{Timeout: timeout},
	}
}

func (s *httpImageStore) Remove(ctx context.Context, imageURL string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodDelete, imageURL, nil)
	if err != nil {
		return err
	}
	response, err := s.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	// the image already being gone is the outcome we wanted
	if response.StatusCode >= 400 && response.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image host returned HTTP %d", response.StatusCode)
	}
	return nil
}
