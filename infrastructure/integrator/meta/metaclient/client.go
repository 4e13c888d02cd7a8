package metaclient

import (
	"encoding/json"
	"io"
	"net/http"

	metadomain "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/adsflow-api/internal/config"
)

type Client interface {
	GetMe(accessToken string) (*metadomain.Identity, error)
	GetAdAccounts(accessToken string) ([]metadomain.AdAccount, error)
	GetAdCampaignByAccountID(accessToken, accountID string) ([]metadomain.Campaign, error)
}

type MetaClient struct {
	Cfg *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
	}
}

// HandleResponse lê o corpo da resposta e converte erros da API do Meta
func (c *MetaClient) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &metadomain.RemoteError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp metadomain.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, &metadomain.RemoteError{
				StatusCode: resp.StatusCode,
				Details:    &errResp.Error,
			}
		}

		return nil, &metadomain.RemoteError{StatusCode: resp.StatusCode}
	}

	return body, nil
}
