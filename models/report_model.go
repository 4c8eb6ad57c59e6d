package models

import (
	"time"

	"qc-laptop/types"
)

type ReportSummary struct {
	Total       int64 `json:"total"`
	Passed      int64 `json:"passed"`
	NeedsRepair int64 `json:"needs_repair"`
	InRepair    int64 `json:"in_repair"`
}

type ReportRecord struct {
	SerialNumber string             `json:"serial_number"`
	Model        *string            `json:"model"`
	Brand        *string            `json:"brand"`
	Status       types.LaptopStatus `json:"status"`
	Notes        *string            `json:"notes"`
	QCDate       *time.Time         `json:"qc_date"`
	QCOfficer    *string            `json:"qc_officer"`
}

// ReportData adalah input untuk export PDF dan Excel.
type ReportData struct {
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Summary   ReportSummary  `json:"summary"`
	Records   []ReportRecord `json:"records"`
}
