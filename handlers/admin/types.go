package admin

// SetDailySoloRequest is the body of POST /admin/daily.
type SetDailySoloRequest struct {
	SoloID int `json:"soloId"`
}
