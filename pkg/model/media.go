package model

type UploadByLinkRequest struct {
	Link string `json:"link"`
}

// UploadByLinkResponse keeps the shape the web client already parses.
type UploadByLinkResponse struct {
	Image   string `json:"image"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}
