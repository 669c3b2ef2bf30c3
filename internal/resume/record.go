package resume

// Record is the structured form of a résumé. It is built once per document and not modified afterwards.
type Record struct {
	RawText           string       `json:"raw_text"`
	PersonalInfo      PersonalInfo `json:"personal_info"`
	Education         []Education  `json:"education"`
	WorkExperience    []Experience `json:"work_experience"`
	ProjectExperience []Experience `json:"project_experience"`
	Skills            []string     `json:"skills"`
	Certificates      []string     `json:"certificates"`
	Summary           string       `json:"summary"`

	// Set only when the record was parsed from a file.
	FilePath   string `json:"file_path,omitempty"`
	FileFormat string `json:"file_format,omitempty"`
}

type PersonalInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Age   int    `json:"age,omitempty"`
}

type Education struct {
	Degree   string `json:"degree"`
	School   string `json:"school"`
	Major    string `json:"major"`
	Duration string `json:"duration"`
}

type Experience struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Duration string `json:"duration"`
}
