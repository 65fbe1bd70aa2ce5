package models

import "encoding/json"

type Webhook struct {
	Event WebhookEvent `json:"event"`
	Data  any          `json:"data"`
}

type WebhookEvent uint8

const (
	WalletUpdated_WebhookEvent WebhookEvent = iota + 1

	TransferCompleted_WebhookEvent
	TransferFailed_WebhookEvent
)

func (w WebhookEvent) String() string {
	switch w {
	case WalletUpdated_WebhookEvent:
		return "wallet.updated"
	case TransferCompleted_WebhookEvent:
		return "transfer.completed"
	case TransferFailed_WebhookEvent:
		return "transfer.failed"
	default:
		panic("unreachable")
	}
}

func (w WebhookEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}
