package model

// DashboardStats aggregates the line collection for the dashboard.
type DashboardStats struct {
	TotalLines       int64            `json:"total_linhas"`
	ActiveLines      int64            `json:"linhas_ativas"`
	ToCancelLines    int64            `json:"linhas_a_cancelar"`
	CancelledLines   int64            `json:"linhas_canceladas"`
	MonthlyCostTotal float64          `json:"custo_mensal_total"`
	AverageFee       float64          `json:"media_mensalidade"`
	ByDepartment     []DepartmentStat `json:"-"`
	ByStatus         []StatusStat     `json:"-"`
}

// DepartmentStat is the per-department breakdown row.
type DepartmentStat struct {
	Department string  `json:"departamento"`
	Count      int64   `json:"total"`
	CostTotal  float64 `json:"custo_total"`
}

// StatusStat is the per-status breakdown row.
type StatusStat struct {
	Status string `json:"status"`
	Count  int64  `json:"total"`
}
