package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tripdesk-hq/tripdesk/internal/shared/constants"
)

// ClientModel represents an agency's customer record. Clients count
// against the all-time client limit.
type ClientModel struct {
	ID             uint    `gorm:"primarykey"`
	OrganizationID uint    `gorm:"not null;index:idx_org_client"`
	FullName       string  `gorm:"not null;size:180"`
	Email          string  `gorm:"not null;size:320;index:idx_client_email"`
	Phone          *string `gorm:"size:32"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ClientModel) TableName() string {
	return constants.TableClients
}

// TripModel represents a planned trip. Trips count against the monthly
// trip limit by creation time.
type TripModel struct {
	ID             uint    `gorm:"primarykey"`
	OrganizationID uint    `gorm:"not null;index:idx_org_trip,priority:1"`
	ClientID       *uint   `gorm:"index:idx_trip_client"`
	Title          string  `gorm:"not null;size:240"`
	Destination    *string `gorm:"size:240"`
	StartDate      *time.Time
	EndDate        *time.Time
	Status         string         `gorm:"not null;size:20;default:planning"`
	CreatedAt      time.Time      `gorm:"index:idx_org_trip,priority:2"`
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (TripModel) TableName() string {
	return constants.TableTrips
}

// ProposalModel represents a quote sent to a client. Proposals count
// against the monthly proposal limit by creation time.
type ProposalModel struct {
	ID             uint   `gorm:"primarykey"`
	OrganizationID uint   `gorm:"not null;index:idx_org_proposal,priority:1"`
	TripID         *uint  `gorm:"index:idx_proposal_trip"`
	Title          string `gorm:"not null;size:240"`
	Status         string `gorm:"not null;size:20;default:draft"`
	Content        datatypes.JSON
	CreatedAt      time.Time      `gorm:"index:idx_org_proposal,priority:2"`
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ProposalModel) TableName() string {
	return constants.TableProposals
}

// TourTemplateModel represents a reusable itinerary template. Templates
// count against the all-time template limit.
type TourTemplateModel struct {
	ID             uint   `gorm:"primarykey"`
	OrganizationID uint   `gorm:"not null;index:idx_org_template"`
	Name           string `gorm:"not null;size:240"`
	Itinerary      datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (TourTemplateModel) TableName() string {
	return constants.TableTourTemplates
}

// TeamMemberModel represents a seat in the organization. Members count
// against the all-time team member limit.
type TeamMemberModel struct {
	ID             uint   `gorm:"primarykey"`
	OrganizationID uint   `gorm:"not null;index:idx_org_member"`
	Email          string `gorm:"not null;size:320"`
	Role           string `gorm:"not null;size:20;default:agent"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (TeamMemberModel) TableName() string {
	return constants.TableTeamMembers
}

// AIRequestModel is an audit row per AI generation call. Requests count
// against the monthly AI request limit by creation time.
type AIRequestModel struct {
	ID             uint      `gorm:"primarykey"`
	OrganizationID uint      `gorm:"not null;index:idx_org_ai,priority:1"`
	Kind           string    `gorm:"not null;size:50"`
	TokensUsed     int64     `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"index:idx_org_ai,priority:2"`
}

// TableName specifies the table name for GORM
func (AIRequestModel) TableName() string {
	return constants.TableAIRequests
}
