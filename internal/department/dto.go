package department

type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

type RankResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
}

type RanksResponse struct {
	Ranks []RankResponse `json:"ranks"`
}
