package meta

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/adsflow-api/internal/config"
	"github.com/vfg2006/adsflow-api/internal/domain"
	"github.com/vfg2006/adsflow-api/pkg/utils"
)

type MetaIntegrator interface {
	TestCredential(accessToken string) (*metadomain.Identity, error)
	ListAdAccounts(accessToken string) ([]*domain.AdAccount, error)
	GetCampaignsByAccountRef(accessToken, accountRef string) ([]*domain.Campaign, error)
}

type Service struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) MetaIntegrator {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

// NormalizeAccountRef garante a forma canônica da referência de conta, com o
// prefixo act_
func NormalizeAccountRef(ref string) string {
	if strings.HasPrefix(ref, "act_") {
		return ref
	}
	return "act_" + ref
}

// StripAccountRef remove o prefixo act_ para chamadas à API
func StripAccountRef(ref string) string {
	return strings.TrimPrefix(ref, "act_")
}

// TestCredential consulta o perfil associado à credencial
func (s *Service) TestCredential(accessToken string) (*metadomain.Identity, error) {
	identity, err := s.Client.GetMe(accessToken)
	if err != nil {
		logrus.WithError(err).Warn("gateway: falha ao validar credencial na API")
		return nil, errors.Wrap(err, "test credential")
	}

	return identity, nil
}

// ListAdAccounts lista as contas de anúncio acessíveis pela credencial
func (s *Service) ListAdAccounts(accessToken string) ([]*domain.AdAccount, error) {
	accounts, err := s.Client.GetAdAccounts(accessToken)
	if err != nil {
		logrus.WithError(err).Error("gateway: falha ao listar contas de anúncio")
		return nil, errors.Wrap(err, "list ad accounts")
	}

	adAccounts := make([]*domain.AdAccount, 0, len(accounts))
	for _, account := range accounts {
		adAccounts = append(adAccounts, &domain.AdAccount{
			AccountRef:   NormalizeAccountRef(account.ID),
			Name:         account.Name,
			ExternalID:   account.AccountID,
			CurrencyCode: account.Currency,
		})
	}

	return adAccounts, nil
}

// GetCampaignsByAccountRef busca as campanhas de uma conta e deriva as
// métricas de performance a partir do primeiro snapshot de insights
func (s *Service) GetCampaignsByAccountRef(accessToken, accountRef string) ([]*domain.Campaign, error) {
	normalizedRef := NormalizeAccountRef(accountRef)

	campaigns, err := s.Client.GetAdCampaignByAccountID(accessToken, StripAccountRef(normalizedRef))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_ref": normalizedRef,
			"error":       err.Error(),
		}).Error("gateway: falha ao buscar campanhas da conta")
		return nil, errors.Wrapf(err, "get campaigns for account %s", normalizedRef)
	}

	result := make([]*domain.Campaign, 0, len(campaigns))
	for i := range campaigns {
		result = append(result, s.factoryCampaign(&campaigns[i], normalizedRef))
	}

	return result, nil
}

// factoryCampaign converte a campanha da API para o modelo interno
func (s *Service) factoryCampaign(campaign *metadomain.Campaign, accountRef string) *domain.Campaign {
	c := &domain.Campaign{
		ID:           campaign.ID,
		Name:         campaign.Name,
		Status:       campaign.Status,
		Objective:    campaign.Objective,
		AdAccountRef: accountRef,
	}

	insight := campaign.FirstInsight()
	if insight == nil {
		return c
	}

	spend, err := strconv.ParseFloat(insight.Spend, 64)
	if err != nil && insight.Spend != "" {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"spend_value": insight.Spend,
			"error":       err.Error(),
		}).Warn("gateway: erro ao converter spend para float")
	}

	impressions, _ := strconv.Atoi(insight.Impressions)
	clicks, _ := strconv.Atoi(insight.Clicks)
	apiCTR, _ := strconv.ParseFloat(insight.CTR, 64)
	conversions := insight.GetConversions()

	c.Spend = spend
	c.Impressions = impressions
	c.Clicks = clicks
	c.Conversions = conversions
	c.CTR = utils.RoundWithTwoDecimalPlace(apiCTR * 100)

	if clicks > 0 {
		c.CPC = utils.RoundWithTwoDecimalPlace(spend / float64(clicks))
	}

	if spend > 0 {
		c.ROAS = utils.RoundWithTwoDecimalPlace(float64(conversions) * domain.ConversionValue / spend)
	}

	return c
}
