package dto

import "docsearch-be/internal/entity"

type UploadDocumentResponse struct {
	Ok         bool            `json:"ok"`
	DocumentId string          `json:"document_id"`
	Filename   string          `json:"filename"`
	Category   entity.Category `json:"category"`
}

type ListDocumentsResponse struct {
	Ok        bool                    `json:"ok"`
	Documents []entity.DocumentRecord `json:"documents"`
}
