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

// GetMe valida a credencial consultando o perfil associado a ela
func (c *MetaClient) GetMe(accessToken string) (*metadomain.Identity, error) {
	baseURL := fmt.Sprintf("%s/me", c.Cfg.Meta.URL)

	params := url.Values{}
	params.Add("fields", "id,name")
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

	var identity metadomain.Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if identity.ID == "" {
		return nil, errors.New("no data found")
	}

	return &identity, nil
}
