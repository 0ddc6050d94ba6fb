package dto

type UploadDocumentResponse struct {
	Status        string `json:"status"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
}

type DocumentStatusResponse struct {
	HasDocuments bool    `json:"has_documents"`
	Filename     *string `json:"filename"`
}

type ClearDocumentsResponse struct {
	Status string `json:"status"`
}
