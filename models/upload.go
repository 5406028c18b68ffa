package models

type CreateUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type CreateUploadResponse struct {
	Success   bool   `json:"success"`
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	GetURL    string `json:"getUrl"`
	PublicURL string `json:"publicUrl,omitempty"`
}
