package model

import "time"

const (
	LineStatusActive    = "Ativa"
	LineStatusToCancel  = "A Cancelar"
	LineStatusCancelled = "Cancelada"

	Yes = "Sim"
	No  = "Não"
)

// LineStatuses lists the status values in display order.
var LineStatuses = []string{LineStatusActive, LineStatusToCancel, LineStatusCancelled}

// Line is a telecom line/contract tracked by the organization.
type Line struct {
	ID              int64     `json:"id"`
	Account         string    `json:"conta"`
	Phone           string    `json:"linha"` // digits only
	Plan            string    `json:"plano"`
	MonthlyFeeCents int64     `json:"mensalidade_centavos"`
	Responsible     string    `json:"responsavel"`
	Department      string    `json:"departamento"`
	HasChip         string    `json:"chipeira"` // "Sim" or "Não"
	ActivationDate  time.Time `json:"efetivacao"`
	EndDate         time.Time `json:"termino"`
	Status          string    `json:"status"`
	InUse           string    `json:"uso"` // "Sim" or "Não"
	Phase           *string   `json:"fase,omitempty"`
}

// MonthlyFee returns the fee in reais.
func (l *Line) MonthlyFee() float64 {
	return float64(l.MonthlyFeeCents) / 100
}

// PhaseText returns the phase label or an empty string.
func (l *Line) PhaseText() string {
	if l.Phase == nil {
		return ""
	}
	return *l.Phase
}

// ValidLineStatus reports whether s is one of the three line statuses.
func ValidLineStatus(s string) bool {
	for _, st := range LineStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ValidYesNo reports whether s is "Sim" or "Não".
func ValidYesNo(s string) bool {
	return s == Yes || s == No
}

// LineForm is the raw add/edit form as posted by the browser. Values are
// validated and normalized by the line service.
type LineForm struct {
	Account        string `form:"conta"`
	Phone          string `form:"linha"`
	Plan           string `form:"plano"`
	MonthlyFee     string `form:"mensalidade"`
	Responsible    string `form:"responsavel"`
	Department     string `form:"departamento"`
	HasChip        string `form:"chipeira"`
	ActivationDate string `form:"efetivacao"`
	EndDate        string `form:"termino"`
	Status         string `form:"status"`
	InUse          string `form:"uso"`
	Phase          string `form:"fase"`
}

// LineFilter holds the listing parameters.
type LineFilter struct {
	Search  string
	Page    int
	PerPage int
}
