package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akabraham06/warp/cache"
	"github.com/akabraham06/warp/clients"
	"github.com/akabraham06/warp/config"
	"github.com/akabraham06/warp/errors"
	"github.com/akabraham06/warp/ledger"
	"github.com/akabraham06/warp/metrics"
	"github.com/akabraham06/warp/models"
	"github.com/akabraham06/warp/types/requests"
	"github.com/akabraham06/warp/types/responses"
	"github.com/akabraham06/warp/utils"
)

type TransferService interface {
	ExecuteTransfer(ctx context.Context, req *requests.ExecuteTransferRequest) (*responses.Response[*responses.TransferResponseData], error)
	FetchTransfer(ctx context.Context, req *requests.FetchTransferRequest) (*responses.Response[*models.TransactionRecord], error)
	GetTransferHistory(ctx context.Context, req *requests.FetchTransfersRequest) (*responses.Response[[]*models.TransactionRecord], error)
}

func NewTransferService(cfg *config.Config, store ledger.Store, quotes cache.QuoteCache, payments clients.PaymentProcessor, webhookService WebhookService, m *metrics.Metrics, log *zap.Logger) TransferService {
	return &transferService{
		service: service{
			cfg:            cfg,
			ledger:         store,
			quotes:         quotes,
			payments:       payments,
			webhookService: webhookService,
			metrics:        m,
			log:            log,
		},
	}
}

type transferService struct {
	service
}

// ExecuteTransfer settles a previously issued quote. The quote is claimed
// first and never restored: a failed settlement consumes it, and the sender
// requests a fresh quote to retry. External payment deposits are created
// before the ledger transaction and refunded if it aborts.
func (t *transferService) ExecuteTransfer(ctx context.Context, req *requests.ExecuteTransferRequest) (*responses.Response[*responses.TransferResponseData], error) {
	sender := ctx.Value("user").(*models.Account)

	quote := t.quotes.Claim(req.QuoteID)
	if quote == nil {
		t.metrics.TransfersFailedTotal.WithLabelValues("quote_not_found").Inc()
		return nil, errors.NewQuoteNotFoundError()
	}

	receiver, err := t.ledger.FindAccountByEmail(ctx, req.ReceiverEmail)
	if err != nil {
		t.metrics.TransfersFailedTotal.WithLabelValues("receiver_not_found").Inc()
		return nil, err
	}

	deposit, err := t.createDeposit(ctx, quote, req.ReceiverEmail)
	if err != nil {
		t.metrics.TransfersFailedTotal.WithLabelValues("payment").Inc()
		t.webhookService.SendTransferFailedEvent(sender, t.failedResponse(err))
		return nil, err
	}

	record := &models.TransactionRecord{
		ID:               uuid.NewString(),
		SenderID:         sender.ID,
		ReceiverID:       receiver.ID,
		ReceiverEmail:    receiver.Email,
		SentAmount:       quote.SendAmount,
		SentCurrency:     quote.SendCurrency,
		ReceivedAmount:   utils.ApproximateAmount(quote.ReceiveCurrency, quote.OurAmount),
		ReceivedCurrency: quote.ReceiveCurrency,
		Rate:             quote.OurRate,
		Route:            quote.Route,
		CreatedAt:        time.Now(),
	}
	if deposit != nil {
		record.PaymentID = &deposit.ID
		record.PaymentStatus = &deposit.Status
	}

	err = t.ledger.RunTransaction(ctx, func(tx ledger.Tx) error {
		senderDoc, err := tx.Account(sender.ID)
		if err != nil {
			return err
		}
		if senderDoc.Balance(quote.SendCurrency).LessThan(quote.SendAmount) {
			return errors.NewInsufficientBalanceError(quote.SendCurrency)
		}

		if err := tx.SetBalance(sender.ID, quote.SendCurrency, senderDoc.Balance(quote.SendCurrency).Sub(quote.SendAmount)); err != nil {
			return err
		}

		// A transfer to the sender's own account applies both legs to
		// the same document.
		receiverDoc := senderDoc
		if receiver.ID != sender.ID {
			receiverDoc, err = tx.Account(receiver.ID)
			if err != nil {
				return err
			}
		}
		base := receiverDoc.Balance(quote.ReceiveCurrency)
		if receiver.ID == sender.ID && quote.ReceiveCurrency == quote.SendCurrency {
			base = base.Sub(quote.SendAmount)
		}
		if err := tx.SetBalance(receiver.ID, quote.ReceiveCurrency, base.Add(record.ReceivedAmount)); err != nil {
			return err
		}

		return tx.CreateRecord(record)
	})
	if err != nil {
		t.compensateDeposit(deposit)
		t.metrics.TransfersFailedTotal.WithLabelValues(failureReason(err)).Inc()
		t.webhookService.SendTransferFailedEvent(sender, t.failedResponse(err))
		return nil, err
	}

	t.metrics.TransfersCompletedTotal.Inc()

	data := &responses.TransferResponseData{
		Transaction: record,
		Status:      "COMPLETED",
		Message:     "Transfer executed successfully",
		Timestamp:   record.CreatedAt,
	}
	if deposit != nil {
		data.PaymentID = &deposit.ID
		data.PaymentStatus = &deposit.Status
		data.PaymentClientSecret = utils.String(deposit.ClientSecret)
	}

	t.webhookService.SendTransferCompletedEvent(sender, data)
	t.notifyReceiverWallet(receiver, quote.ReceiveCurrency)

	return &responses.Response[*responses.TransferResponseData]{
		Status:  "successful",
		Message: "Transfer executed successfully",
		Data:    data,
	}, nil
}

// createDeposit charges the external processor when the receiver is on the
// deposit list and the payout currency matches. A nil deposit with nil
// error means no deposit was required.
func (t *transferService) createDeposit(ctx context.Context, quote *models.Quote, receiverEmail string) (*models.PaymentDeposit, error) {
	if !slices.ContainsFunc(t.cfg.Deposits.Receivers, func(e string) bool {
		return strings.EqualFold(e, receiverEmail)
	}) {
		return nil, nil
	}
	if !strings.EqualFold(quote.ReceiveCurrency, t.cfg.Deposits.Currency) {
		return nil, nil
	}
	if t.payments == nil {
		return nil, errors.NewPaymentError(errors.NewFailedDependencyError("payment processor not configured"))
	}

	deposit, err := t.payments.CreateDeposit(ctx, quote.OurAmount, quote.ReceiveCurrency, clients.DepositMetadata{
		ReceiverEmail: receiverEmail,
		QuoteID:       quote.ID,
	})
	if err != nil {
		return nil, errors.NewPaymentError(err)
	}
	return deposit, nil
}

// compensateDeposit refunds a deposit whose ledger transfer aborted. It
// runs on a fresh context so an already cancelled request cannot strand
// the charge.
func (t *transferService) compensateDeposit(deposit *models.PaymentDeposit) {
	if deposit == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.Payments.Timeout)
	defer cancel()

	status, err := t.payments.Refund(ctx, deposit.ID)
	if err != nil {
		t.log.Error("refunding deposit after failed settlement",
			zap.String("deposit_id", deposit.ID), zap.Error(err))
		return
	}
	t.metrics.DepositRefundsTotal.Inc()
	t.log.Info("deposit refunded", zap.String("deposit_id", deposit.ID), zap.String("status", status))
}

func (t *transferService) notifyReceiverWallet(receiver *models.Account, currency string) {
	balances, err := t.ledger.Balances(context.Background(), receiver.ID)
	if err != nil {
		t.log.Error("fetching receiver balances for webhook", zap.Error(err))
		return
	}
	t.webhookService.SendWalletUpdatedEvent(receiver, &responses.WalletResponseData{
		Currency: currency,
		Name:     Currencies[currency],
		Balance:  balances[currency],
		User:     receiver,
	})
}

func (t *transferService) failedResponse(err error) *responses.TransferResponseData {
	return &responses.TransferResponseData{
		Status:    "FAILED",
		Message:   err.Error(),
		Timestamp: time.Now(),
	}
}

func (t *transferService) FetchTransfer(ctx context.Context, req *requests.FetchTransferRequest) (*responses.Response[*models.TransactionRecord], error) {
	user := ctx.Value("user").(*models.Account)

	record, err := t.ledger.Transaction(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if record.SenderID != user.ID && record.ReceiverID != user.ID {
		return nil, errors.NewNotFoundError("transaction not found")
	}

	return &responses.Response[*models.TransactionRecord]{
		Status: "successful",
		Data:   record,
	}, nil
}

func (t *transferService) GetTransferHistory(ctx context.Context, req *requests.FetchTransfersRequest) (*responses.Response[[]*models.TransactionRecord], error) {
	user := ctx.Value("user").(*models.Account)

	records, err := t.ledger.TransactionsByAccount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &responses.Response[[]*models.TransactionRecord]{
		Status: "successful",
		Data:   records,
	}, nil
}

func failureReason(err error) string {
	switch {
	case errors.IsType(err, errors.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.IsType(err, errors.ErrSettlementFailed):
		return "conflict"
	default:
		return "ledger"
	}
}
