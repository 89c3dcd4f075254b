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

package core

const (
	// LogFieldModule is the log field for the module name.
	LogFieldModule = "module"

	// LogFieldCredentialID is the log field key for the ID of a credential.
	LogFieldCredentialID = "credentialID"
	// LogFieldCredentialOwner is the log field key for the owner of a credential.
	LogFieldCredentialOwner = "credentialOwner"
	// LogFieldCredentialIssuer is the log field key for the issuer of a credential.
	LogFieldCredentialIssuer = "credentialIssuer"

	// LogFieldFingerprint is the log field key for a credential fingerprint.
	LogFieldFingerprint = "fingerprint"
	// LogFieldTransactionRef is the log field key for a ledger transaction reference.
	LogFieldTransactionRef = "txRef"
	// LogFieldLedgerAddress is the log field key for the ledger contract address.
	LogFieldLedgerAddress = "ledgerAddr"

	// LogFieldAuditSubject is the log field of the subject (e.g. credential ID) of an audit event.
	LogFieldAuditSubject = "subject"
)
