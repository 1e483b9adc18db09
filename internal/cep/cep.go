package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// ErrNotFound means the postal code is well formed but unknown to the lookup
// service. Callers decide the fallback.
var ErrNotFound = errors.New("cep não encontrado")

var digitsRx = regexp.MustCompile(`\D`)

// Address is the ViaCEP response shape used for profile autofill.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro,omitempty"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: "https://viacep.com.br/ws",
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup resolves an 8-digit postal code. Formatting characters are stripped
// before the call.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	clean := digitsRx.ReplaceAllString(cep, "")
	if len(clean) != 8 {
		return nil, fmt.Errorf("CEP deve ter 8 dígitos")
	}

	url := fmt.Sprintf("%s/%s/json/", c.BaseURL, clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consulta do CEP: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("consulta do CEP: status %d", res.StatusCode)
	}

	var addr Address
	if err := json.NewDecoder(res.Body).Decode(&addr); err != nil {
		return nil, fmt.Errorf("consulta do CEP: %w", err)
	}
	if addr.Erro {
		return nil, ErrNotFound
	}
	return &addr, nil
}
