package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/shared/constants"
)

// OrganizationModel represents the database persistence model for travel
// agency organizations. This is the anti-corruption layer between domain
// and database.
type OrganizationModel struct {
	ID             uint    `gorm:"primarykey"`
	Name           string  `gorm:"not null;size:240"`
	Tier           string  `gorm:"not null;size:20;default:free;index:idx_tier"`
	GSTIN          *string `gorm:"size:32"`
	BillingState   *string `gorm:"size:120"`
	BillingAddress datatypes.JSON
	LogoURL        *string `gorm:"size:500"`
	PrimaryColor   *string `gorm:"size:32"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}
