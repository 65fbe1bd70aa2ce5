package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akabraham06/warp/models"
	"github.com/akabraham06/warp/types/responses"
)

type WebhookService interface {
	SendWalletUpdatedEvent(parent *models.Account, wallet *responses.WalletResponseData) (self WebhookService)
	SendTransferCompletedEvent(parent *models.Account, transfer *responses.TransferResponseData) (self WebhookService)
	SendTransferFailedEvent(parent *models.Account, transfer *responses.TransferResponseData) (self WebhookService)
}

type webhookService struct {
	service
}

func NewWebhookService(log *zap.Logger) WebhookService {
	return &webhookService{
		service: service{
			log: log,
		},
	}
}

func (w *webhookService) doRequest(url string, body *bytes.Buffer, key *string) (error, bool) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return err, false
	}

	if key != nil {
		now := time.Now().Unix()
		data := strings.ReplaceAll(body.String(), "/", "\\/")
		payload := fmt.Sprintf("%d.%s", now, data)
		mac := hmac.New(sha256.New, []byte(*key))
		if _, err := mac.Write([]byte(payload)); err != nil {
			return err, false
		}
		signature := hex.EncodeToString(mac.Sum(nil))
		req.Header.Set("warp-signature", fmt.Sprintf("ts=%d,sig=%s", now, signature))
	}

	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	res, err := http.DefaultClient.Do(req)
	if res != nil {
		defer res.Body.Close()
		resData, _ := io.ReadAll(res.Body)
		w.log.Info("response from callback", zap.String("Response Data", string(resData)))
	}
	return err, (res != nil && res.StatusCode < 300)
}

func (w *webhookService) sendEvent(parent *models.Account, eventType models.WebhookEvent, eventData any) (self WebhookService) {
	if parent.CallbackURL == nil {
		return w
	}
	w.log.Info("dispatching event...", zap.String("Event Type", eventType.String()))

	event := &models.Webhook{
		Event: eventType,
		Data:  eventData,
	}

	data, err := json.Marshal(event)
	if err != nil {
		w.log.Error("encoding request body", zap.Error(err))
		return w
	}

	err, ok := w.doRequest(*parent.CallbackURL, bytes.NewBuffer(data), parent.WebhookKey)
	if err != nil {
		w.log.Error("dispatching request", zap.Error(err))
		return w
	}

	if ok {
		return w
	}

	// todo: schedule event for single retry
	return w
}

func (w *webhookService) SendWalletUpdatedEvent(parent *models.Account, wallet *responses.WalletResponseData) (self WebhookService) {
	return w.sendEvent(parent, models.WalletUpdated_WebhookEvent, wallet)
}

func (w *webhookService) SendTransferCompletedEvent(parent *models.Account, transfer *responses.TransferResponseData) (self WebhookService) {
	return w.sendEvent(parent, models.TransferCompleted_WebhookEvent, transfer)
}

func (w *webhookService) SendTransferFailedEvent(parent *models.Account, transfer *responses.TransferResponseData) (self WebhookService) {
	return w.sendEvent(parent, models.TransferFailed_WebhookEvent, transfer)
}
