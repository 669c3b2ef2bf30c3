package tools

var scrapeCompanyDescriptor = Descriptor{
	Name:        "scrape_company_info",
	Description: "爬取指定公司的官网信息，包括公司介绍、招聘信息、员工待遇等",
	InputSchema: Schema{
		Type: "object",
		Properties: map[string]Property{
			"company_name":        {Type: "string", Description: "公司名称，如'腾讯'、'阿里巴巴'"},
			"company_url":         {Type: "string", Description: "公司官网URL（可选）"},
			"include_recruitment": {Type: "boolean", Description: "是否包含招聘信息", Default: true},
		},
		Required: []string{"company_name"},
	},
}

var parseResumeDescriptor = Descriptor{
	Name:        "parse_resume",
	Description: "解析用户简历，提取关键信息如技能、经验、教育背景等",
	InputSchema: Schema{
		Type: "object",
		Properties: map[string]Property{
			"resume_path": {Type: "string", Description: "简历文件路径（支持PDF、Word）"},
			"resume_text": {Type: "string", Description: "简历文本内容（可选，与resume_path二选一）"},
		},
	},
}

var analyzeMatchDescriptor = Descriptor{
	Name:        "analyze_job_match",
	Description: "分析岗位与个人的匹配度，提供详细的评分和建议",
	InputSchema: Schema{
		Type: "object",
		Properties: map[string]Property{
			"resume_data":     {Type: "object", Description: "简历数据（由parse_resume返回）"},
			"job_description": {Type: "string", Description: "岗位描述"},
			"company_info":    {Type: "object", Description: "公司信息（由scrape_company_info返回）"},
			"user_preferences": {
				Type:        "object",
				Description: "用户偏好（期望薪资、工作地点、加班接受度等）",
				Properties: map[string]Property{
					"expected_salary":     {Type: "string"},
					"location":            {Type: "string"},
					"overtime_acceptable": {Type: "boolean"},
				},
			},
		},
		Required: []string{"resume_data", "job_description"},
	},
}

var recommendPositionsDescriptor = Descriptor{
	Name:        "recommend_positions",
	Description: "推荐公司内更适合的岗位",
	InputSchema: Schema{
		Type: "object",
		Properties: map[string]Property{
			"resume_data":  {Type: "object", Description: "简历数据"},
			"company_info": {Type: "object", Description: "公司信息（包含所有招聘岗位）"},
			"top_k":        {Type: "integer", Description: "返回top K个推荐岗位", Default: 3},
		},
		Required: []string{"resume_data", "company_info"},
	},
}

var generateReportDescriptor = Descriptor{
	Name:        "generate_report",
	Description: "生成完整的匹配分析报告",
	InputSchema: Schema{
		Type: "object",
		Properties: map[string]Property{
			"match_result": {Type: "object", Description: "匹配分析结果"},
			"format": {
				Type:        "string",
				Description: "报告格式",
				Enum:        []string{"markdown", "pdf", "html"},
				Default:     "markdown",
			},
		},
		Required: []string{"match_result"},
	},
}
