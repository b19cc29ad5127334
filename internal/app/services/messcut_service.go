package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nivedpm/hostelhub/internal/app/models"
	"github.com/nivedpm/hostelhub/internal/app/models/dto"
	"github.com/nivedpm/hostelhub/internal/app/repositories"
	"github.com/nivedpm/hostelhub/internal/pkg/apperrors"
	"github.com/nivedpm/hostelhub/internal/pkg/cache"
	"github.com/nivedpm/hostelhub/internal/pkg/logger"
)

// Date layouts accepted for leaving/joining dates. Clients have historically
// submitted both ISO and day-first forms.
var reportDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02-01-2006",
	"02/01/2006",
}

// MesscutService handles messcut request lifecycle and reporting
type MesscutService struct {
	messcutRepo repositories.IMesscutRepository
	userRepo    repositories.IUserRepository
	reportCache *cache.ReportCache
}

// NewMesscutService creates a new messcut service. reportCache may be nil,
// in which case reports are always recomputed.
func NewMesscutService(
	messcutRepo repositories.IMesscutRepository,
	userRepo repositories.IUserRepository,
	reportCache *cache.ReportCache,
) *MesscutService {
	return &MesscutService{
		messcutRepo: messcutRepo,
		userRepo:    userRepo,
		reportCache: reportCache,
	}
}

// CreateRequest files a new PENDING messcut request.
func (s *MesscutService) CreateRequest(ctx context.Context, req dto.CreateMesscutRequest) (*models.MesscutRequest, error) {
	admission := req.AdmissionNo.String()
	name := strings.TrimSpace(req.Name)
	leaving := strings.TrimSpace(req.LeavingDate)
	if admission == "" || name == "" || leaving == "" {
		return nil, apperrors.NewBadRequestError("Admission number, name and leaving date are required")
	}

	request := &models.MesscutRequest{
		AdmissionNo: admission,
		Name:        name,
		LeavingDate: leaving,
		JoiningDate: strings.TrimSpace(req.JoiningDate),
		Status:      models.MesscutStatusPending,
	}
	if err := s.messcutRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create messcut request: %w", err)
	}

	s.reportCache.Invalidate(ctx)
	logger.Info().Str("admissionNo", admission).Str("id", request.ID).Msg("Messcut request created")
	return request, nil
}

// UpdateStatus transitions a request to ACCEPT or REJECT and drops cached
// reports.
func (s *MesscutService) UpdateStatus(ctx context.Context, id string, status string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.NewBadRequestError("Messcut request id is required")
	}

	status = strings.ToUpper(strings.TrimSpace(status))
	if status != models.MesscutStatusAccepted && status != models.MesscutStatusRejected {
		return apperrors.NewCustomError(apperrors.ErrInvalidMesscutStatus,
			"Status must be ACCEPT or REJECT")
	}

	if err := s.messcutRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.reportCache.Invalidate(ctx)
	logger.Info().Str("id", id).Str("status", status).Msg("Messcut status updated")
	return nil
}

// Report groups accepted messcut requests by admission number, enriched with
// branch and semester from the user store. lastDate is the chronological
// maximum of the group's leaving dates; groups sort by it descending.
func (s *MesscutService) Report(ctx context.Context, admissionNumber string) ([]dto.MesscutSummary, error) {
	admissionNumber = strings.TrimSpace(admissionNumber)

	cacheKey := "all"
	if admissionNumber != "" {
		cacheKey = admissionNumber
	}
	var cached []dto.MesscutSummary
	if s.reportCache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	requests, err := s.messcutRepo.ListAccepted(ctx, admissionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted messcuts: %w", err)
	}
	if len(requests) == 0 {
		return []dto.MesscutSummary{}, nil
	}

	// Group by admission number, keeping first-seen order for stable output.
	groupOrder := make([]string, 0)
	groups := make(map[string]*dto.MesscutSummary)
	for _, req := range requests {
		group, ok := groups[req.AdmissionNo]
		if !ok {
			group = &dto.MesscutSummary{
				Name:            req.Name,
				AdmissionNumber: req.AdmissionNo,
				LastDate:        req.LeavingDate,
			}
			groups[req.AdmissionNo] = group
			groupOrder = append(groupOrder, req.AdmissionNo)
		}
		group.Count++
		if dateAfter(req.LeavingDate, group.LastDate) {
			group.LastDate = req.LeavingDate
		}
	}

	branchSemByAdmission, err := s.branchSemByAdmission(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]dto.MesscutSummary, 0, len(groupOrder))
	for _, admission := range groupOrder {
		group := *groups[admission]
		group.Branch, group.Sem = "-", "-"
		if bs, ok := branchSemByAdmission[admission]; ok {
			if bs.Branch != "" {
				group.Branch = bs.Branch
			}
			if bs.Sem != "" {
				group.Sem = bs.Sem
			}
		}
		report = append(report, group)
	}

	// Newest lastDate first; rows whose date does not parse sink to the end
	// without reordering among themselves.
	sort.SliceStable(report, func(i, j int) bool {
		ti, okI := parseReportDate(report[i].LastDate)
		tj, okJ := parseReportDate(report[j].LastDate)
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return ti.After(tj)
	})

	s.reportCache.Set(ctx, cacheKey, report)
	return report, nil
}

// StudentDetails returns one student's accepted requests, newest first.
func (s *MesscutService) StudentDetails(ctx context.Context, admissionNo string) ([]models.MesscutRequest, error) {
	admissionNo = strings.TrimSpace(admissionNo)
	if admissionNo == "" {
		return nil, apperrors.NewBadRequestError("Admission number is required")
	}

	requests, err := s.messcutRepo.ListAcceptedByStudent(ctx, admissionNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list student messcuts: %w", err)
	}
	if requests == nil {
		requests = []models.MesscutRequest{}
	}
	return requests, nil
}

func (s *MesscutService) branchSemByAdmission(ctx context.Context) (map[string]models.BranchSem, error) {
	entries, err := s.userRepo.ListBranchSem(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user branches: %w", err)
	}
	byAdmission := make(map[string]models.BranchSem, len(entries))
	for _, entry := range entries {
		byAdmission[entry.AdmissionNumber] = entry
	}
	return byAdmission, nil
}

func parseReportDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateAfter reports whether a is chronologically after b. When either side
// does not parse, a parseable date always wins and two unparseable dates
// keep the incumbent.
func dateAfter(a, b string) bool {
	ta, okA := parseReportDate(a)
	tb, okB := parseReportDate(b)
	if okA != okB {
		return okA
	}
	if !okA {
		return false
	}
	return ta.After(tb)
}
