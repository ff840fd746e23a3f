package payment

import "encoding/json"

const createClientTokenMutation = `mutation CreateClientToken($input: CreateClientTokenInput) {
  createClientToken(input: $input) {
    clientToken
  }
}`

const chargePaymentMethodMutation = `mutation ChargePaymentMethod($input: ChargePaymentMethodInput!) {
  chargePaymentMethod(input: $input) {
    transaction {
      id
      status
      amount {
        value
        currencyCode
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		ErrorClass string `json:"errorClass"`
		LegacyCode string `json:"legacyCode"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type clientTokenData struct {
	CreateClientToken struct {
		ClientToken string `json:"clientToken"`
	} `json:"createClientToken"`
}

type braintreeTransaction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount struct {
		Value        string `json:"value"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"amount"`
}

type chargeData struct {
	ChargePaymentMethod *struct {
		Transaction *braintreeTransaction `json:"transaction"`
	} `json:"chargePaymentMethod"`
}

// Error classes that describe a problem with the payment itself rather than the integration
var declineErrorClasses = map[string]bool{
	"VALIDATION": true,
	"NOT_FOUND":  true,
}

// Transaction statuses that mean the charge went through
var successfulStatuses = map[string]bool{
	"AUTHORIZED":               true,
	"AUTHORIZING":              true,
	"SETTLEMENT_PENDING":       true,
	"SETTLING":                 true,
	"SETTLED":                  true,
	"SUBMITTED_FOR_SETTLEMENT": true,
}
