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

package verify

import (
	"io"

	"github.com/mdp/qrterminal/v3"
)

// RenderQR encodes the fingerprint's public verification URL as a QR code, so the credential
// can be verified by pointing a phone camera at a terminal or a printout of it.
func (s *service) RenderQR(writer io.Writer, fingerprint string) error {
	url, err := s.VerificationURL(fingerprint)
	if err != nil {
		return err
	}
	RenderQR(writer, url)
	return nil
}

// RenderQR writes the given URL as a terminal-renderable QR code to writer.
func RenderQR(writer io.Writer, url string) {
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:     qrterminal.M,
		Writer:    writer,
		BlackChar: qrterminal.BLACK,
		WhiteChar: qrterminal.WHITE,
		QuietZone: 1,
	})
}
