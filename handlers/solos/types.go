package solos

// SoloRequest is the body of solo create and update calls.
type SoloRequest struct {
	Title       string `json:"title" binding:"required"`
	Artist      string `json:"artist" binding:"required"`
	Guitarist   string `json:"guitarist"`
	SpotifyID   string `json:"spotifyId" binding:"required"`
	SoloStartMs int    `json:"soloStartMs"`
	SoloEndMs   int    `json:"soloEndMs"`
	Hint        string `json:"hint"`
}
