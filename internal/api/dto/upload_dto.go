package dto

// UploadRequest payload for pre-signed upload URL issuance.
type UploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// UploadResponse carries the signed URL and the object key it writes to.
type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
