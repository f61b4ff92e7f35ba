package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"serenity/config"
	"serenity/models"
	"serenity/utils"
)

// PaymentHandler exposes the raw payment-intent endpoint consumed by the
// mobile payment sheet.
type PaymentHandler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(cfg *config.Config, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{cfg: cfg, logger: logger}
}

// CreatePaymentIntentHandler registers a payment of the posted amount (in
// minor units) and returns the client secret. The booking flow computes
// the deposit server-side; this endpoint trusts the caller's amount only
// because the sheet needs an intent before any booking exists.
func (h *PaymentHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var input models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = c.Request.Context()

	intent, err := paymentintent.New(params)
	if err != nil {
		h.logger.Error("failed to create payment intent", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to create payment intent", "")
		return
	}

	c.JSON(http.StatusOK, models.PaymentIntentResponse{
		ClientSecret:        intent.ClientSecret,
		MerchantDisplayName: h.cfg.MerchantDisplayName,
	})
}
