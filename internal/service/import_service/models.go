package import_service

import (
	"github.com/tcp_snm/codetrack/internal/database"
	"github.com/tcp_snm/codetrack/internal/service/catalog_service"
)

// questions imported from a company sheet always belong to LeetCode
const ImportPlatformID int32 = 2

type ImportService struct {
	DB      database.Store
	Catalog *catalog_service.CatalogService
}

// ImportRow is one record of a company sheet. Topics is the raw cell, names
// separated by commas or semicolons.
type ImportRow struct {
	Difficulty string `json:"difficulty"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Topics     string `json:"topics"`
}

type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportSummary struct {
	SuccessCount                int          `json:"success_count"`
	FailedCount                 int          `json:"failed_count"`
	SkippedCount                int          `json:"skipped_count"`
	OnlyCompanyAssociationCount int          `json:"only_company_association_count"`
	Failures                    []RowFailure `json:"failures"`
}

type rowOutcome int

const (
	outcomeCreated rowOutcome = iota
	outcomeSkipped
	outcomeLinked
)
