package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles disponíveis na plataforma
const (
	RoleOperator = 1 // Operador da agência
	RoleTenant   = 2 // Cliente da agência
)

// CampaignLink representa a autorização de um cliente para visualizar uma campanha.
// A identidade do vínculo é o CampaignID.
type CampaignLink struct {
	AdAccountRef string `json:"ad_account_id"`
	CampaignID   string `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
}

type Client struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	SecretHash string          `json:"secret_hash"`
	RoleID     int             `json:"role_id"`
	Links      []*CampaignLink `json:"links"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// HasLink verifica se o cliente está autorizado a ver a campanha
func (c *Client) HasLink(campaignID string) bool {
	for _, link := range c.Links {
		if link.CampaignID == campaignID {
			return true
		}
	}
	return false
}

// LinkedCampaignIDs retorna o conjunto de campanhas autorizadas
func (c *Client) LinkedCampaignIDs() map[string]bool {
	ids := make(map[string]bool, len(c.Links))
	for _, link := range c.Links {
		ids[link.CampaignID] = true
	}
	return ids
}

type UpdateClientRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	RoleID *int    `json:"role_id"`
}

type Claims struct {
	ClientID    string
	ClientName  string
	ClientEmail string
	ClientRole  int
	jwt.RegisteredClaims
}
