package responses

import (
	"time"

	"github.com/akabraham06/warp/models"
)

type TransferResponseData struct {
	Transaction *models.TransactionRecord `json:"transaction"`
	Status      string                    `json:"status"`
	Message     string                    `json:"message"`
	Timestamp   time.Time                 `json:"timestamp"`

	PaymentID           *string `json:"payment_id,omitempty"`
	PaymentStatus       *string `json:"payment_status,omitempty"`
	PaymentClientSecret *string `json:"payment_client_secret,omitempty"`
}
