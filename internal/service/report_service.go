package service

import (
	"bytes"
	"context"
	"time"

	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/dto"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/infra"
	"github.com/AjayprakashNarayanasamy/Inventory-Management-Backend/internal/repository"
)

type ReportService interface {
	Inventory(ctx context.Context) (*dto.ReportResponse[dto.InventoryReportRow], error)
	Sales(ctx context.Context) (*dto.ReportResponse[dto.SalesReportRow], error)
	InventoryPDF(ctx context.Context) ([]byte, error)
}

type reportService struct {
	repo repository.ReportRepository
	now  func() time.Time
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo, now: time.Now}
}

func (s *reportService) Inventory(ctx context.Context) (*dto.ReportResponse[dto.InventoryReportRow], error) {
	rows, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.InventoryReportRow{}
	}
	return &dto.ReportResponse[dto.InventoryReportRow]{Count: len(rows), Data: rows}, nil
}

func (s *reportService) Sales(ctx context.Context) (*dto.ReportResponse[dto.SalesReportRow], error) {
	rows, err := s.repo.Sales(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []dto.SalesReportRow{}
	}
	return &dto.ReportResponse[dto.SalesReportRow]{Count: len(rows), Data: rows}, nil
}

func (s *reportService) InventoryPDF(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := infra.WriteInventoryPDF(&buf, rows, s.now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
