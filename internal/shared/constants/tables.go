package constants

// Database table names
const (
	TableOrganizations = "organizations"
	TableSubscriptions = "subscriptions"
	TableClients       = "clients"
	TableTrips         = "trips"
	TableProposals     = "proposals"
	TableTourTemplates = "tour_templates"
	TableTeamMembers   = "team_members"
	TableAIRequests    = "ai_requests"
	TableInvoices      = "invoices"
)
