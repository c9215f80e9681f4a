package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"pennywise/internal/errors"
	"pennywise/internal/repository"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders user and transaction data as downloadable files.
type ExportService interface {
	ExportUsers(ctx context.Context, format string) (*ExportFile, error)
	ExportTransactions(ctx context.Context, userID uuid.UUID, format string) (*ExportFile, error)
}

type exportService struct {
	userRepo repository.UserRepository
	txRepo   repository.TransactionRepository
}

// NewExportService creates a new export service.
func NewExportService(userRepo repository.UserRepository, txRepo repository.TransactionRepository) ExportService {
	return &exportService{userRepo: userRepo, txRepo: txRepo}
}

func (s *exportService) ExportUsers(ctx context.Context, format string) (*ExportFile, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	header := []string{"ID", "Name", "Email", "Role", "Active", "Expires At", "Created At"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		expires := ""
		if u.ExpiresAt != nil {
			expires = u.ExpiresAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			u.ID.String(), u.Name, u.Email, u.Role,
			fmt.Sprintf("%t", u.IsActive), expires,
			u.CreatedAt.Format(time.RFC3339),
		})
	}

	return render(format, "users", users, header, rows)
}

func (s *exportService) ExportTransactions(ctx context.Context, userID uuid.UUID, format string) (*ExportFile, error) {
	txs, err := s.txRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	header := []string{"ID", "Type", "Category", "Amount", "Description", "Date"}
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}
		rows = append(rows, []string{
			t.ID.String(), string(t.Type), category,
			t.Amount.StringFixed(2), t.Description,
			t.Date.Format("2006-01-02"),
		})
	}

	return render(format, "transactions", txs, header, rows)
}

// render serializes one dataset in the requested format. JSON exports carry
// the full records, tabular formats the flattened rows.
func render(format, name string, records interface{}, header []string, rows [][]string) (*ExportFile, error) {
	stamp := time.Now().Format("20060102")

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		return &ExportFile{
			Data:        data,
			ContentType: "application/json",
			Filename:    fmt.Sprintf("%s_%s.json", name, stamp),
		}, nil

	case FormatCSV, "":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flush csv: %w", err)
		}
		return &ExportFile{
			Data:        buf.Bytes(),
			ContentType: "text/csv; charset=utf-8",
			Filename:    fmt.Sprintf("%s_%s.csv", name, stamp),
		}, nil

	case FormatXLSX:
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		for i, h := range header {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
		for r, row := range rows {
			for c, value := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				_ = f.SetCellValue(sheet, cell, value)
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return nil, fmt.Errorf("write xlsx: %w", err)
		}
		return &ExportFile{
			Data:        buf.Bytes(),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("%s_%s.xlsx", name, stamp),
		}, nil

	default:
		return nil, errors.ErrValidation
	}
}
