package company

// Profile describes an employer as gathered from its public site and recruitment listings.
type Profile struct {
	Name      string     `json:"company_name"`
	URL       string     `json:"url,omitempty"`
	BasicInfo BasicInfo  `json:"basic_info"`
	Culture   Culture    `json:"culture"`
	Positions []Position `json:"positions"`
}

type BasicInfo struct {
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Size        string `json:"size,omitempty"`
	Founded     string `json:"founded,omitempty"`
}

type Culture struct {
	Values  []string `json:"values"`
	Mission string   `json:"mission"`
	Vision  string   `json:"vision"`
}

// Position is an open role at the company.
type Position struct {
	Title            string   `json:"title"`
	Location         string   `json:"location,omitempty"`
	Salary           string   `json:"salary,omitempty"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// NewProfile returns an empty profile with all collections initialised.
func NewProfile(name, url string) *Profile {
	return &Profile{
		Name:      name,
		URL:       url,
		Culture:   Culture{Values: []string{}},
		Positions: []Position{},
	}
}

// KnownURLs maps well-known company names to their official sites.
var KnownURLs = map[string]string{
	"腾讯":   "https://www.tencent.com",
	"阿里巴巴": "https://www.alibaba.com",
	"字节跳动": "https://www.bytedance.com",
	"百度":   "https://www.baidu.com",
	"华为":   "https://www.huawei.com",
}

// SamplePositions is the recruitment listing served until a real job board integration exists.
func SamplePositions() []Position {
	return []Position{
		{
			Title:    "Python后端工程师",
			Location: "北京",
			Salary:   "20-35K",
			Requirements: []string{
				"3年以上Python开发经验",
				"熟悉Django/Flask框架",
				"熟悉MySQL、Redis等数据库",
			},
			Responsibilities: []string{
				"负责后端服务开发和维护",
				"参与系统架构设计",
			},
		},
	}
}
