package export

import (
	"context"
	"fmt"
	"time"

	common_models "go-lms-bridge/internal/common/models"
	"go-lms-bridge/internal/features/audit"
	"go-lms-bridge/internal/features/entity"
	"go-lms-bridge/internal/features/mapper"
	"go-lms-bridge/internal/features/settings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportPageSize = 500

// ExportService renders the assembled settings of every entity of one
// type into a spreadsheet, one row per entity, one column per mapped
// field.
type ExportService interface {
	ExportSettings(ctx context.Context, entityType common_models.EntityType) ([]byte, string, error)
}

type ExportServiceImpl struct {
	Entities     entity.EntityRepository
	Settings     settings.SettingsService
	Mapper       mapper.MapperService
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewExportService(entities entity.EntityRepository, settingsService settings.SettingsService, mapperService mapper.MapperService, auditService audit.AuditService, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{
		Entities:     entities,
		Settings:     settingsService,
		Mapper:       mapperService,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *ExportServiceImpl) ExportSettings(ctx context.Context, entityType common_models.EntityType) ([]byte, string, error) {
	if !entityType.Valid() {
		return nil, "", fmt.Errorf("invalid entity type: %s", entityType)
	}

	columns := []string{"entity_id", "title"}
	for _, entry := range s.Mapper.Entries(entityType) {
		columns = append(columns, entry.Path)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Settings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for offset := int64(0); ; offset += exportPageSize {
		page, err := s.Entities.List(ctx, entityType, exportPageSize, offset)
		if err != nil {
			return nil, "", err
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			entityID := page[i].ID.Hex()
			doc, err := s.Settings.GetSettings(ctx, entityID)
			if err != nil {
				s.Logger.Warn("skipping entity in export",
					zap.String("entity_id", entityID),
					zap.Error(err))
				continue
			}
			flat := settings.Flatten(doc)
			flat["entity_id"] = entityID
			flat["title"] = page[i].Title

			for colIdx, col := range columns {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				value := flat[col]
				switch v := value.(type) {
				case nil:
					// Leave unlimited and unset cells blank.
				case []interface{}:
					f.SetCellValue(sheetName, cell, fmt.Sprintf("%v", v))
				case map[string]interface{}:
					f.SetCellValue(sheetName, cell, fmt.Sprintf("%v", v))
				default:
					f.SetCellValue(sheetName, cell, v)
				}
			}
			row++
		}

		if int64(len(page)) < exportPageSize {
			break
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_settings_%s.xlsx", entityType, time.Now().Format("20060102_150405"))

	if err := s.AuditService.LogChange(ctx, common_models.AuditActionExport, string(entityType), "", map[string]common_models.Change{
		"rows": {New: row - 2},
	}); err != nil {
		s.Logger.Warn("failed to audit export", zap.Error(err))
	}

	return buffer.Bytes(), filename, nil
}
