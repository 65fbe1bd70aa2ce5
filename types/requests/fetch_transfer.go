package requests

type FetchTransferRequest struct {
	TransactionID string `uri:"transaction_id" validate:"required"`
}

type FetchTransfersRequest struct{}
