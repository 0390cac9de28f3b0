package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for
// organization subscriptions. Plan ids and statuses are stored as the
// billing provider reported them; normalization happens in the domain.
type SubscriptionModel struct {
	ID                uint   `gorm:"primarykey"`
	OrganizationID    uint   `gorm:"not null;index:idx_org_subscription"`
	PlanID            string `gorm:"not null;size:50"`
	Status            string `gorm:"not null;size:20;index:idx_status"`
	TrialEnd          *time.Time
	CancelAtPeriodEnd bool `gorm:"default:false"`
	CurrentPeriodEnd  *time.Time
	DowngradePlanID   *string `gorm:"size:50"`
	ProviderRef       *string `gorm:"size:191;comment:billing provider subscription id"`
	Metadata          datatypes.JSON
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
