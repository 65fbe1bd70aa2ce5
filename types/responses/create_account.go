package responses

import "github.com/akabraham06/warp/models"

type CreateAccountResponseData struct {
	User  *models.Account     `json:"user"`
	Token *models.AccessToken `json:"token"`
}
