package dto

// ── 附件模块 DTO ──

// DocumentResponse 附件信息响应
type DocumentResponse struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	FileName      string `json:"file_name"`
	MimeType      string `json:"mime_type,omitempty"`
	SizeBytes     int64  `json:"size_bytes"`
	UploadedBy    string `json:"uploaded_by,omitempty"`
	CreatedAt     string `json:"created_at"`
}
