package metaclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/adsflow-api/infrastructure/integrator/meta/domain"
)

type ResponseAdAccount struct {
	Data   []metadomain.AdAccount `json:"data"`
	Paging metadomain.Paging      `json:"paging"`
}

// TODO adicionar loop para pegar todas as páginas
func (c *MetaClient) GetAdAccounts(accessToken string) ([]metadomain.AdAccount, error) {
	baseURL := fmt.Sprintf("%s/me/adaccounts", c.Cfg.Meta.URL)

	params := url.Values{}
	params.Add("fields", "id,name,account_id,currency")
	params.Add("access_token", accessToken)

	url := baseURL + "?" + params.Encode()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, &metadomain.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response ResponseAdAccount
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if response.Data == nil {
		return nil, errors.New("no data found")
	}

	return response.Data, nil
}
