package responses

import "github.com/akabraham06/warp/models"

type QuoteResponseData struct {
	*models.Quote

	ProcessingTimeMS int64 `json:"processing_time_ms"`
}
