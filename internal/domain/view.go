package domain

import "time"

// Views navegáveis da aplicação
const (
	ViewDashboard      = "dashboard"
	ViewCampaigns      = "campaigns"
	ViewAdmin          = "admin"
	ViewAdminDashboard = "admin_dashboard"
	ViewAdminSettings  = "admin_settings"
)

// Locales suportados pelo front
const (
	LocaleFR = "fr"
	LocaleAR = "ar"
)

var validViews = map[string]bool{
	ViewDashboard:      true,
	ViewCampaigns:      true,
	ViewAdmin:          true,
	ViewAdminDashboard: true,
	ViewAdminSettings:  true,
}

// IsValidView verifica se o nome da view é navegável
func IsValidView(view string) bool {
	return validViews[view]
}

// Status do agente conversacional
const (
	AgentStatusIdle     = "IDLE"
	AgentStatusScanning = "SCANNING"
	AgentStatusTyping   = "TYPING"
)

type ChatMessage struct {
	Role      string    `json:"role"` // user | model
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
