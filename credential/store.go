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
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/credport/credport-node/hash"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var _ schema.Tabler = (*credentialRecord)(nil)
var _ schema.Tabler = (*skillRecord)(nil)
var _ Store = (*sqlStore)(nil)

type credentialRecord struct {
	ID        string `gorm:"primaryKey"`
	Owner     string `gorm:"index"`
	Title     string
	Issuer    string
	Type      string
	IssueDate string
	// CreditPoints and NSQFLevel are 0 when not applicable.
	CreditPoints int
	NSQFLevel    int `gorm:"column:nsqf_level"`
	Description  string
	ImageURL     string `gorm:"column:image_url"`
	// Fingerprint is nullable; the unique index doubles as a claim in multi-instance deployments.
	Fingerprint          *string `gorm:"uniqueIndex"`
	TransactionReference *string
	CreatedAt            time.Time
	Skills               []skillRecord `gorm:"foreignKey:CredentialID;references:ID;constraint:OnDelete:CASCADE"`
}

func (credentialRecord) TableName() string {
	return "credential"
}

type skillRecord struct {
	CredentialID string `gorm:"primaryKey"`
	Skill        string `gorm:"primaryKey"`
}

func (skillRecord) TableName() string {
	return "credential_skill"
}

type sqlStore struct {
	db *gorm.DB
}

// NewSQLStore creates a Store backed by the given SQL database.
func NewSQLStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Create(ctx context.Context, credential Credential) (*Credential, error) {
	if err := credential.Validate(); err != nil {
		return nil, err
	}
	credential.ID = uuid.NewString()
	credential.Fingerprint = nil
	credential.TransactionReference = ""
	record := recordFromCredential(credential)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	result := credentialFromRecord(record)
	return &result, nil
}

func (s *sqlStore) Get(ctx context.Context, id string) (*Credential, error) {
	record, err := s.find(ctx, "id = ?", id)
	if err != nil {
		return nil, err
	}
	result := credentialFromRecord(*record)
	return &result, nil
}

func (s *sqlStore) GetByFingerprint(ctx context.Context, fingerprint hash.Fingerprint) (*Credential, error) {
	record, err := s.find(ctx, "fingerprint = ?", fingerprint.String())
	if err != nil {
		return nil, err
	}
	result := credentialFromRecord(*record)
	return &result, nil
}

func (s *sqlStore) List(ctx context.Context, owner string) ([]Credential, error) {
	var records []credentialRecord
	err := s.db.WithContext(ctx).Preload("Skills").
		Where("owner = ?", owner).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	results := make([]Credential, len(records))
	for i, record := range records {
		results[i] = credentialFromRecord(record)
	}
	return results, nil
}

func (s *sqlStore) Update(ctx context.Context, credential Credential) (*Credential, error) {
	if err := credential.Validate(); err != nil {
		return nil, err
	}
	var updated *credentialRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findInTx(tx, "id = ?", credential.ID)
		if err != nil {
			return err
		}
		// once a fingerprint exists the fields it covers are frozen
		if current.Fingerprint != nil && coveredFieldsChanged(*current, credential) {
			return ErrAnchoredFieldChanged
		}
		record := recordFromCredential(credential)
		record.Fingerprint = current.Fingerprint
		record.TransactionReference = current.TransactionReference
		record.CreatedAt = current.CreatedAt
		if err := tx.Where("credential_id = ?", credential.ID).Delete(&skillRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Skills").Save(&record).Error; err != nil {
			return err
		}
		if len(record.Skills) > 0 {
			if err := tx.Create(&record.Skills).Error; err != nil {
				return err
			}
		}
		updated = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	result := credentialFromRecord(*updated)
	return &result, nil
}

func (s *sqlStore) SaveFingerprint(ctx context.Context, id string, fingerprint hash.Fingerprint) error {
	if fingerprint.Empty() {
		return errors.New("refusing to store empty fingerprint")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findInTx(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if current.Fingerprint != nil {
			if *current.Fingerprint == fingerprint.String() {
				return nil
			}
			return fmt.Errorf("credential already has a different fingerprint (id=%s)", id)
		}
		formatted := fingerprint.String()
		return tx.Model(&credentialRecord{}).Where("id = ?", id).
			Update("fingerprint", &formatted).Error
	})
}

func (s *sqlStore) SaveTransactionReference(ctx context.Context, id string, txRef string) error {
	if txRef == "" {
		return errors.New("refusing to store empty transaction reference")
	}
	result := s.db.WithContext(ctx).Model(&credentialRecord{}).Where("id = ?", id).
		Update("transaction_reference", &txRef)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, id string) (*Credential, error) {
	var deleted *Credential
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findInTx(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if err := tx.Where("credential_id = ?", id).Delete(&skillRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&credentialRecord{}, "id = ?", id).Error; err != nil {
			return err
		}
		result := credentialFromRecord(*record)
		deleted = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *sqlStore) find(ctx context.Context, query string, args ...interface{}) (*credentialRecord, error) {
	return findInTx(s.db.WithContext(ctx), query, args...)
}

func findInTx(tx *gorm.DB, query string, args ...interface{}) (*credentialRecord, error) {
	var record credentialRecord
	err := tx.Preload("Skills").Where(query, args...).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func coveredFieldsChanged(current credentialRecord, updated Credential) bool {
	return current.Owner != updated.Owner ||
		current.Title != updated.Title ||
		current.Issuer != updated.Issuer ||
		current.IssueDate != updated.IssueDate
}

func recordFromCredential(credential Credential) credentialRecord {
	record := credentialRecord{
		ID:           credential.ID,
		Owner:        credential.Owner,
		Title:        credential.Title,
		Issuer:       credential.Issuer,
		Type:         credential.Type,
		IssueDate:    credential.IssueDate,
		CreditPoints: credential.CreditPoints,
		NSQFLevel:    credential.NSQFLevel,
		Description:  credential.Description,
		ImageURL:     credential.ImageURL,
		CreatedAt:    credential.CreatedAt,
	}
	if credential.Fingerprint != nil {
		formatted := credential.Fingerprint.String()
		record.Fingerprint = &formatted
	}
	if credential.TransactionReference != "" {
		record.TransactionReference = &credential.TransactionReference
	}
	for _, skill := range credential.Skills {
		record.Skills = append(record.Skills, skillRecord{CredentialID: credential.ID, Skill: skill})
	}
	return record
}

func credentialFromRecord(record credentialRecord) Credential {
	credential := Credential{
		ID:           record.ID,
		Owner:        record.Owner,
		Title:        record.Title,
		Issuer:       record.Issuer,
		Type:         record.Type,
		IssueDate:    record.IssueDate,
		CreditPoints: record.CreditPoints,
		NSQFLevel:    record.NSQFLevel,
		Description:  record.Description,
		ImageURL:     record.ImageURL,
		CreatedAt:    record.CreatedAt,
	}
	if record.Fingerprint != nil {
		if fingerprint, err := hash.ParseHex(*record.Fingerprint); err == nil {
			credential.Fingerprint = &fingerprint
		}
	}
	if record.TransactionReference != nil {
		credential.TransactionReference = *record.TransactionReference
	}
	for _, skill := range record.Skills {
		credential.Skills = append(credential.Skills, skill.Skill)
	}
	sort.Strings(credential.Skills)
	return credential
}
