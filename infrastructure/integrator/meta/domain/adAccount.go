package metadomain

type AdAccount struct {
	ID        string `json:"id"`         // Referência com prefixo act_
	Name      string `json:"name"`
	AccountID string `json:"account_id"` // Identificador numérico sem prefixo
	Currency  string `json:"currency"`
}
