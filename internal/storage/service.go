package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/internal/models"
	"github.com/creatorstation/creator-dashboard/pkg/img"
)

var ErrNotFound = errors.New("指定されたファイルが見つかりません")

const (
	reportDirRoot    = "レポート登録簿"
	youtubeReportDir = "YouTube分析レポート登録簿"
	xReportDir       = "X分析レポート登録簿"
	scheduledPostDir = "X投稿登録簿"
)

// reportFileName builds the timestamped name the dashboard expects,
// without zero padding except the milliseconds.
func reportFileName(reportType string, now time.Time) string {
	prefix := "Report"
	switch reportType {
	case models.ReportTypeYouTubeAnalytics:
		prefix = "YouTube_Analytics_Report"
	case models.ReportTypeXAnalytics:
		prefix = "X_Analytics_Report"
	}
	return fmt.Sprintf("%s_%d-%d-%d-%d-%d-%d-%03d.xlsx",
		prefix, now.Year()%100, int(now.Month()), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/1e6)
}

func reportSubdir(reportType string) string {
	if reportType == models.ReportTypeYouTubeAnalytics {
		return filepath.Join(reportDirRoot, youtubeReportDir)
	}
	return filepath.Join(reportDirRoot, xReportDir)
}

// uniquePath appends a short uuid suffix when the target already exists.
func uniquePath(dir, name string) (string, string) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return path, name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	name = fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)
	return filepath.Join(dir, name), name
}

// SaveReport renders the workbook to disk and records it.
func SaveReport(body SaveReportBody) (*models.StorageFile, error) {
	now := time.Now().In(config.JST)

	var file = buildXReport(body.AnalyticsData, body.ImprovementSuggestion, body.Period)
	if body.ReportType == models.ReportTypeYouTubeAnalytics {
		file = buildYouTubeReport(body.AnalyticsData, body.ImprovementSuggestion, body.Period)
	}

	dir := filepath.Join(config.StorageDir(), reportSubdir(body.ReportType))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
	}

	path, name := uniquePath(dir, reportFileName(body.ReportType, now))
	if err := file.SaveAs(path); err != nil {
		return nil, fmt.Errorf("レポートの保存に失敗しました: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	rel, _ := filepath.Rel(config.StorageDir(), path)
	record := models.StorageFile{
		ID:          uuid.NewString(),
		Category:    models.FileCategoryReport,
		ReportType:  body.ReportType,
		FileName:    name,
		FilePath:    filepath.ToSlash(rel),
		FileSize:    info.Size(),
		Description: body.Description,
	}
	if err := db.GetDB().Create(&record).Error; err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("ファイル情報の保存に失敗しました: %w", err)
	}

	return &record, nil
}

// ListFiles returns records filtered by category and report type.
func ListFiles(category, reportType string) ([]models.StorageFile, error) {
	q := db.GetDB().Order("created_at desc")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if reportType != "" {
		q = q.Where("report_type = ?", reportType)
	}

	var files []models.StorageFile
	if err := q.Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// GetFile loads one record by id.
func GetFile(id string) (*models.StorageFile, error) {
	var record models.StorageFile
	res := db.GetDB().First(&record, "id = ?", id)
	if res.Error != nil {
		return nil, ErrNotFound
	}
	return &record, nil
}

// AbsolutePath resolves a record's on-disk location.
func AbsolutePath(record *models.StorageFile) string {
	return filepath.Join(config.StorageDir(), filepath.FromSlash(record.FilePath))
}

// DeleteFile removes the record and its file.
func DeleteFile(id string) error {
	record, err := GetFile(id)
	if err != nil {
		return err
	}

	if err := db.GetDB().Delete(&models.StorageFile{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := os.Remove(AbsolutePath(record)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CreateScheduledPost stores a pending X post and its optional image.
func CreateScheduledPost(content string, scheduledAt time.Time, image []byte) (*models.ScheduledPost, error) {
	record := models.ScheduledPost{
		ID:                uuid.NewString(),
		Content:           content,
		ScheduledDatetime: scheduledAt,
		Status:            models.PostStatusPending,
	}

	if len(image) > 0 {
		jpeg, err := img.ToJPEG(image, 5.0)
		if err != nil {
			return nil, fmt.Errorf("画像の変換に失敗しました: %w", err)
		}

		dir := filepath.Join(config.StorageDir(), scheduledPostDir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
		}

		path, _ := uniquePath(dir, record.ID+".jpg")
		if err := os.WriteFile(path, jpeg, 0644); err != nil {
			return nil, fmt.Errorf("画像の保存に失敗しました: %w", err)
		}
		rel, _ := filepath.Rel(config.StorageDir(), path)
		record.ImagePath = filepath.ToSlash(rel)
	}

	if err := db.GetDB().Create(&record).Error; err != nil {
		return nil, fmt.Errorf("予約投稿の保存に失敗しました: %w", err)
	}
	return &record, nil
}

// ListScheduledPosts returns posts, pending first, then by schedule time.
func ListScheduledPosts() ([]models.ScheduledPost, error) {
	var posts []models.ScheduledPost
	err := db.GetDB().
		Order("case when status = 'pending' then 0 else 1 end").
		Order("scheduled_datetime asc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CancelScheduledPost marks a pending post cancelled so the dispatcher
// skips it. Already posted or cancelled posts stay untouched.
func CancelScheduledPost(id string) (*models.ScheduledPost, error) {
	var post models.ScheduledPost
	if err := db.GetDB().First(&post, "id = ?", id).Error; err != nil {
		return nil, ErrNotFound
	}
	if post.Status != models.PostStatusPending {
		return nil, fmt.Errorf("保留中の投稿のみキャンセルできます")
	}

	post.Status = models.PostStatusCancelled
	if err := db.GetDB().Model(&post).Update("status", post.Status).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// MarkDuePosts flips pending posts whose time has passed to posted and
// returns how many changed. The dispatcher runs this every minute.
func MarkDuePosts(now time.Time) (int64, error) {
	res := db.GetDB().
		Model(&models.ScheduledPost{}).
		Where("status = ? AND scheduled_datetime <= ?", models.PostStatusPending, now).
		Update("status", models.PostStatusPosted)
	return res.RowsAffected, res.Error
}
