package dto

// ── 报表模块 DTO ──

// DashboardResponse 管理端概览统计
type DashboardResponse struct {
	TotalCompanies     int64            `json:"total_companies"`
	TotalFacilities    int64            `json:"total_facilities"`
	TotalApplications  int64            `json:"total_applications"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByActivity         map[string]int64 `json:"by_activity"`
	RecentApplications []ApplicationResponse `json:"recent_applications"`
}
