// Package naics 提供 2022 NAICS 行业分类的级联查询。
// 仅收录计划覆盖的行业大类：11, 21, 22, 23, 31-33（制造业合并）, 48, 56。
// 三级结构：2位 Sector → 3位 Category → 6位 Facility Type，
// 设施的 NAICS Code 即选中 Facility Type 的 6 位编码。
package naics

import "sort"

// Code NAICS 编码条目
type Code struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Level  int    `json:"level"`
	Parent string `json:"parent"`
}

// Sectors 返回全部行业大类（按标题字母序）
func Sectors() []Code {
	out := make([]Code, len(sectors))
	copy(out, sectors)
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// CategoriesBySector 返回指定大类下的 3 位行业中类
func CategoriesBySector(sector string) []Code {
	var out []Code
	for _, c := range categories {
		if c.Parent == sector {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// TypesByCategory 返回指定中类下的 6 位设施类型
func TypesByCategory(category string) []Code {
	var out []Code
	for _, c := range facilityTypes {
		if c.Parent == category {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// DeriveCode 由三级级联选择推导设施 NAICS 编码。
// 三级链路必须完整匹配（type 属于 category，category 属于 sector），
// 任一级未命中返回空字符串。
func DeriveCode(sector, category, facilityType string) string {
	cat, ok := categoryIndex[category]
	if !ok || cat.Parent != sector {
		return ""
	}
	ft, ok := typeIndex[facilityType]
	if !ok || ft.Parent != category {
		return ""
	}
	return ft.Code
}

// TitleFor 返回任意级别编码的标题，未收录返回空字符串
func TitleFor(code string) string {
	if c, ok := sectorIndex[code]; ok {
		return c.Title
	}
	if c, ok := categoryIndex[code]; ok {
		return c.Title
	}
	if c, ok := typeIndex[code]; ok {
		return c.Title
	}
	return ""
}

var (
	sectorIndex   = make(map[string]Code, len(sectors))
	categoryIndex = make(map[string]Code, len(categories))
	typeIndex     = make(map[string]Code, len(facilityTypes))
)

func init() {
	for _, c := range sectors {
		sectorIndex[c.Code] = c
	}
	for _, c := range categories {
		categoryIndex[c.Code] = c
	}
	for _, c := range facilityTypes {
		typeIndex[c.Code] = c
	}
}
