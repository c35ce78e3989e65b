package naics

// 数据来源：2022 NAICS Structure 工作表，限定计划覆盖的大类。
// 制造业 31/32/33 合并为 "31-33"，其下中类的 Parent 统一重写为 "31-33"。

var sectors = []Code{
	{Code: "11", Title: "Agriculture, forestry, fishing and hunting", Level: 2, Parent: ""},
	{Code: "21", Title: "Mining, quarrying, and oil and gas extraction", Level: 2, Parent: ""},
	{Code: "22", Title: "Utilities", Level: 2, Parent: ""},
	{Code: "23", Title: "Construction", Level: 2, Parent: ""},
	{Code: "31-33", Title: "Manufacturing", Level: 2, Parent: ""},
	{Code: "48", Title: "Transportation and warehousing", Level: 2, Parent: ""},
	{Code: "56", Title: "Administrative and support, waste management and remediation services", Level: 2, Parent: ""},
}

var categories = []Code{
	// 11 — Agriculture, forestry, fishing and hunting
	{Code: "111", Title: "Crop production", Level: 3, Parent: "11"},
	{Code: "112", Title: "Animal production and aquaculture", Level: 3, Parent: "11"},
	{Code: "113", Title: "Forestry and logging", Level: 3, Parent: "11"},
	{Code: "114", Title: "Fishing, hunting and trapping", Level: 3, Parent: "11"},
	{Code: "115", Title: "Support activities for agriculture and forestry", Level: 3, Parent: "11"},

	// 21 — Mining, quarrying, and oil and gas extraction
	{Code: "211", Title: "Oil and gas extraction", Level: 3, Parent: "21"},
	{Code: "212", Title: "Mining and quarrying (except oil and gas)", Level: 3, Parent: "21"},
	{Code: "213", Title: "Support activities for mining, and oil and gas extraction", Level: 3, Parent: "21"},

	// 22 — Utilities
	{Code: "221", Title: "Utilities", Level: 3, Parent: "22"},

	// 23 — Construction
	{Code: "236", Title: "Construction of buildings", Level: 3, Parent: "23"},
	{Code: "237", Title: "Heavy and civil engineering construction", Level: 3, Parent: "23"},
	{Code: "238", Title: "Specialty trade contractors", Level: 3, Parent: "23"},

	// 31-33 — Manufacturing（31/32/33 重写为合并大类）
	{Code: "311", Title: "Food manufacturing", Level: 3, Parent: "31-33"},
	{Code: "312", Title: "Beverage and tobacco product manufacturing", Level: 3, Parent: "31-33"},
	{Code: "321", Title: "Wood product manufacturing", Level: 3, Parent: "31-33"},
	{Code: "322", Title: "Paper manufacturing", Level: 3, Parent: "31-33"},
	{Code: "324", Title: "Petroleum and coal product manufacturing", Level: 3, Parent: "31-33"},
	{Code: "325", Title: "Chemical manufacturing", Level: 3, Parent: "31-33"},
	{Code: "326", Title: "Plastics and rubber products manufacturing", Level: 3, Parent: "31-33"},
	{Code: "327", Title: "Non-metallic mineral product manufacturing", Level: 3, Parent: "31-33"},
	{Code: "331", Title: "Primary metal manufacturing", Level: 3, Parent: "31-33"},
	{Code: "332", Title: "Fabricated metal product manufacturing", Level: 3, Parent: "31-33"},
	{Code: "333", Title: "Machinery manufacturing", Level: 3, Parent: "31-33"},
	{Code: "336", Title: "Transportation equipment manufacturing", Level: 3, Parent: "31-33"},

	// 48 — Transportation and warehousing
	{Code: "481", Title: "Air transportation", Level: 3, Parent: "48"},
	{Code: "482", Title: "Rail transportation", Level: 3, Parent: "48"},
	{Code: "483", Title: "Water transportation", Level: 3, Parent: "48"},
	{Code: "484", Title: "Truck transportation", Level: 3, Parent: "48"},
	{Code: "486", Title: "Pipeline transportation", Level: 3, Parent: "48"},
	{Code: "488", Title: "Support activities for transportation", Level: 3, Parent: "48"},

	// 56 — Administrative and support, waste management and remediation services
	{Code: "561", Title: "Administrative and support services", Level: 3, Parent: "56"},
	{Code: "562", Title: "Waste management and remediation services", Level: 3, Parent: "56"},
}

var facilityTypes = []Code{
	// 111 / 112 / 113
	{Code: "111110", Title: "Soybean farming", Level: 6, Parent: "111"},
	{Code: "111211", Title: "Potato farming", Level: 6, Parent: "111"},
	{Code: "111419", Title: "Other food crops grown under cover", Level: 6, Parent: "111"},
	{Code: "112110", Title: "Beef cattle ranching and farming, including feedlots", Level: 6, Parent: "112"},
	{Code: "112310", Title: "Chicken egg production", Level: 6, Parent: "112"},
	{Code: "112510", Title: "Aquaculture", Level: 6, Parent: "112"},
	{Code: "113210", Title: "Forest nurseries and gathering of forest products", Level: 6, Parent: "113"},
	{Code: "113311", Title: "Logging (except contract)", Level: 6, Parent: "113"},
	{Code: "114113", Title: "Salt water fishing", Level: 6, Parent: "114"},
	{Code: "115110", Title: "Support activities for crop production", Level: 6, Parent: "115"},

	// 211 / 212 / 213
	{Code: "211110", Title: "Oil and gas extraction (except oil sands)", Level: 6, Parent: "211"},
	{Code: "211141", Title: "In-situ oil sands extraction", Level: 6, Parent: "211"},
	{Code: "212220", Title: "Gold and silver ore mining", Level: 6, Parent: "212"},
	{Code: "212231", Title: "Lead-zinc ore mining", Level: 6, Parent: "212"},
	{Code: "213111", Title: "Drilling oil and gas wells", Level: 6, Parent: "213"},

	// 221
	{Code: "221111", Title: "Hydro-electric power generation", Level: 6, Parent: "221"},
	{Code: "221112", Title: "Fossil-fuel electric power generation", Level: 6, Parent: "221"},
	{Code: "221119", Title: "Other electric power generation", Level: 6, Parent: "221"},
	{Code: "221210", Title: "Natural gas distribution", Level: 6, Parent: "221"},
	{Code: "221310", Title: "Water supply and irrigation systems", Level: 6, Parent: "221"},

	// 236 / 237 / 238
	{Code: "236110", Title: "Residential building construction", Level: 6, Parent: "236"},
	{Code: "236210", Title: "Industrial building and structure construction", Level: 6, Parent: "236"},
	{Code: "237310", Title: "Highway, street and bridge construction", Level: 6, Parent: "237"},
	{Code: "238220", Title: "Plumbing, heating and air-conditioning contractors", Level: 6, Parent: "238"},

	// 31-33 制造业
	{Code: "311111", Title: "Dog and cat food manufacturing", Level: 6, Parent: "311"},
	{Code: "311611", Title: "Animal (except poultry) slaughtering", Level: 6, Parent: "311"},
	{Code: "311814", Title: "Commercial bakeries and frozen bakery product manufacturing", Level: 6, Parent: "311"},
	{Code: "312110", Title: "Soft drink and ice manufacturing", Level: 6, Parent: "312"},
	{Code: "321111", Title: "Sawmills (except shingle and shake mills)", Level: 6, Parent: "321"},
	{Code: "321215", Title: "Structural wood product manufacturing", Level: 6, Parent: "321"},
	{Code: "322111", Title: "Mechanical pulp mills", Level: 6, Parent: "322"},
	{Code: "322121", Title: "Paper (except newsprint) mills", Level: 6, Parent: "322"},
	{Code: "324110", Title: "Petroleum refineries", Level: 6, Parent: "324"},
	{Code: "325181", Title: "Alkali and chlorine manufacturing", Level: 6, Parent: "325"},
	{Code: "325210", Title: "Resin and synthetic rubber manufacturing", Level: 6, Parent: "325"},
	{Code: "326111", Title: "Plastic bag and pouch manufacturing", Level: 6, Parent: "326"},
	{Code: "327310", Title: "Cement manufacturing", Level: 6, Parent: "327"},
	{Code: "327410", Title: "Lime manufacturing", Level: 6, Parent: "327"},
	{Code: "331110", Title: "Iron and steel mills and ferro-alloy manufacturing", Level: 6, Parent: "331"},
	{Code: "331313", Title: "Primary production of alumina and aluminum", Level: 6, Parent: "331"},
	{Code: "332710", Title: "Machine shops", Level: 6, Parent: "332"},
	{Code: "333120", Title: "Construction machinery manufacturing", Level: 6, Parent: "333"},
	{Code: "336110", Title: "Automobile and light-duty motor vehicle manufacturing", Level: 6, Parent: "336"},
	{Code: "336320", Title: "Motor vehicle electrical and electronic equipment manufacturing", Level: 6, Parent: "336"},

	// 481-488 运输仓储
	{Code: "481110", Title: "Scheduled air transportation", Level: 6, Parent: "481"},
	{Code: "482112", Title: "Short-haul freight rail transportation", Level: 6, Parent: "482"},
	{Code: "483115", Title: "Deep sea, coastal and Great Lakes water transportation", Level: 6, Parent: "483"},
	{Code: "484110", Title: "General freight trucking, local", Level: 6, Parent: "484"},
	{Code: "484121", Title: "General freight trucking, long distance, truckload", Level: 6, Parent: "484"},
	{Code: "486110", Title: "Pipeline transportation of crude oil", Level: 6, Parent: "486"},
	{Code: "488310", Title: "Port and harbour operations", Level: 6, Parent: "488"},

	// 561 / 562
	{Code: "561722", Title: "Janitorial services (except window cleaning)", Level: 6, Parent: "561"},
	{Code: "562110", Title: "Waste collection", Level: 6, Parent: "562"},
	{Code: "562210", Title: "Waste treatment and disposal", Level: 6, Parent: "562"},
	{Code: "562910", Title: "Remediation services", Level: 6, Parent: "562"},
}
