package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	appconfig "github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
)

// Checkout wraps the Mercado Pago SDK: one checkout preference per
// appointment deposit, webhook lookups by payment id. A nil Checkout means
// payments are not configured.
type Checkout struct {
	prefClient    preference.Client
	paymentClient payment.Client
	webhookURL    string
}

func NewCheckout(cfg *appconfig.Config) (*Checkout, error) {
	if cfg.MercadoPagoToken == "" {
		return nil, nil
	}

	mpCfg, err := mpconfig.New(cfg.MercadoPagoToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Checkout{
		prefClient:    preference.NewClient(mpCfg),
		paymentClient: payment.NewClient(mpCfg),
		webhookURL:    cfg.PaymentWebhook,
	}, nil
}

type DepositRequest struct {
	ExternalReference string
	Title             string
	Amount            float64
	Currency          string
	PayerEmail        string
}

type DepositResult struct {
	PreferenceID string
	CheckoutURL  string
}

func (c *Checkout) CreateDeposit(ctx context.Context, req DepositRequest) (*DepositResult, error) {
	pref, err := c.prefClient.Create(ctx, preference.Request{
		ExternalReference: req.ExternalReference,
		NotificationURL:   c.webhookURL,
		Items: []preference.ItemRequest{
			{
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  req.Amount,
				CurrencyID: req.Currency,
			},
		},
		Payer: &preference.PayerRequest{
			Email: req.PayerEmail,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &DepositResult{
		PreferenceID: pref.ID,
		CheckoutURL:  pref.InitPoint,
	}, nil
}

type PaymentStatus struct {
	ExternalReference string
	Status            string
	Approved          bool
}

// LookupPayment resolves a gateway payment id (from a webhook) to our
// external reference and an approved/rejected status.
func (c *Checkout) LookupPayment(ctx context.Context, paymentID int) (*PaymentStatus, error) {
	p, err := c.paymentClient.Get(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", paymentID, err)
	}

	return &PaymentStatus{
		ExternalReference: p.ExternalReference,
		Status:            p.Status,
		Approved:          p.Status == "approved",
	}, nil
}
