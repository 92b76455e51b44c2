package storage

import (
	"bytes"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

// readUpload reads the whole multipart file, surfacing truncated reads.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func MountController(router fiber.Router) {
	router.Post("/reports", SaveReportHandler)
	router.Get("/files", ListFilesHandler)
	router.Delete("/files/:id", DeleteFileHandler)
	router.Get("/files/:id/download", DownloadFileHandler)
	router.Post("/scheduled-posts", CreateScheduledPostHandler)
	router.Get("/scheduled-posts", ListScheduledPostsHandler)
	router.Delete("/scheduled-posts/:id", CancelScheduledPostHandler)
}

func SaveReportHandler(c *fiber.Ctx) error {
	var body SaveReportBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := body.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	record, err := SaveReport(body)
	if err != nil {
		log.Printf("report save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"file_id":   record.ID,
		"file_name": record.FileName,
		"file_path": record.FilePath,
		"file_size": record.FileSize,
		"message":   "レポートを保存しました",
	})
}

func ListFilesHandler(c *fiber.Ctx) error {
	files, err := ListFiles(c.Query("category"), c.Query("report_type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	out := make([]fiber.Map, 0, len(files))
	for _, f := range files {
		out = append(out, fiber.Map{
			"id":          f.ID,
			"category":    f.Category,
			"report_type": f.ReportType,
			"file_name":   f.FileName,
			"file_path":   f.FilePath,
			"file_size":   f.FileSize,
			"description": f.Description,
			"created_at":  f.CreatedAt,
			"updated_at":  f.UpdatedAt,
		})
	}

	return c.JSON(fiber.Map{"success": true, "files": out, "total": len(out)})
}

func DeleteFileHandler(c *fiber.Ctx) error {
	if err := DeleteFile(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "ファイルを削除しました"})
}

func DownloadFileHandler(c *fiber.Ctx) error {
	record, err := GetFile(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+record.FileName+`"`)
	c.Set(fiber.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.SendFile(AbsolutePath(record))
}

func CreateScheduledPostHandler(c *fiber.Ctx) error {
	var body ScheduledPostBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := body.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	scheduledAt, err := time.ParseInLocation(time.RFC3339, body.ScheduledDatetime, config.JST)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduled_datetimeはRFC3339形式で指定してください",
		})
	}

	var image []byte
	if file, err := c.FormFile("image"); err == nil {
		image, err = readUpload(file)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "画像の読み込みに失敗しました: " + err.Error(),
			})
		}
	}

	record, err := CreateScheduledPost(body.Content, scheduledAt, image)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func ListScheduledPostsHandler(c *fiber.Ctx) error {
	posts, err := ListScheduledPosts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "posts": posts, "total": len(posts)})
}

func CancelScheduledPostHandler(c *fiber.Ctx) error {
	post, err := CancelScheduledPost(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "post": post})
}
