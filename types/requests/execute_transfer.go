package requests

type ExecuteTransferRequest struct {
	QuoteID       string `json:"quote_id" validate:"required"`
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
}
