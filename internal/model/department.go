package model

// Department is a catalog department offered as a refine option.
type Department struct {
	Code   string `json:"code"`
	NameZh string `json:"name_zh"`
	NameEn string `json:"name_en"`
}

// Departments is the static department list shown in the refine panel.
var Departments = []Department{
	{Code: "CHE", NameZh: "化學工程學系", NameEn: "Chemical Engineering"},
	{Code: "CHEM", NameZh: "化學系", NameEn: "Chemistry"},
	{Code: "CS", NameZh: "資訊工程學系", NameEn: "Computer Science"},
	{Code: "ECON", NameZh: "經濟學系", NameEn: "Economics"},
	{Code: "EE", NameZh: "電機工程學系", NameEn: "Electrical Engineering"},
	{Code: "FL", NameZh: "外國語文學系", NameEn: "Foreign Languages and Literature"},
	{Code: "GE", NameZh: "通識教育中心", NameEn: "General Education"},
	{Code: "IEEM", NameZh: "工業工程與工程管理學系", NameEn: "Industrial Engineering and Engineering Management"},
	{Code: "LANG", NameZh: "語言中心", NameEn: "Language Center"},
	{Code: "MATH", NameZh: "數學系", NameEn: "Mathematics"},
	{Code: "MS", NameZh: "材料科學工程學系", NameEn: "Materials Science and Engineering"},
	{Code: "PE", NameZh: "體育室", NameEn: "Physical Education"},
	{Code: "PHYS", NameZh: "物理學系", NameEn: "Physics"},
	{Code: "PME", NameZh: "動力機械工程學系", NameEn: "Power Mechanical Engineering"},
	{Code: "QF", NameZh: "計量財務金融學系", NameEn: "Quantitative Finance"},
}

// FindDepartment looks up a department by code.
func FindDepartment(code string) (Department, bool) {
	for _, d := range Departments {
		if d.Code == code {
			return d, true
		}
	}
	return Department{}, false
}
