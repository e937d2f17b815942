// Package ingest parses a submitted order batch and persists its images and
// manifest into the per-customer directory tree.
package ingest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fotoflesz/printshop-backend/internal/order"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
)

type Service struct {
	log  *logger.Logger
	root string
}

func NewService(log *logger.Logger, root string) *Service {
	return &Service{log: log.With("service", "Ingest"), root: root}
}

// Entry is one persisted print file, recorded for the manifest.
type Entry struct {
	FileNumber int
	Format     string
	Paper      string
	ColorMode  string
	Quantity   string
	Price      float64
	Dir        string // "{format}_{paper}"
	FileName   string
}

type Result struct {
	Saved        int
	TotalPrice   float64
	CustomerDir  string
	ManifestPath string
	Entries      []Entry
}

// IngestBatch walks order indices 0,1,2,… until an index carries neither
// format nor paper. Indices must be contiguous from 0; a gap is
// indistinguishable from end-of-batch. An index whose image part is missing
// is skipped without failing the batch — the metadata simply never makes it
// into the manifest.
func (s *Service) IngestBatch(ctx context.Context, form *multipart.Form, customer order.Customer) (Result, error) {
	var res Result
	if err := customer.Validate(); err != nil {
		return res, err
	}

	customerDir := fmt.Sprintf("%s_%s_%s",
		sanitizeComponent(customer.Name),
		sanitizeComponent(customer.Surname),
		sanitizeComponent(customer.Phone),
	)
	baseDir := filepath.Join(s.root, customerDir)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return res, fmt.Errorf("create customer dir: %w", err)
	}
	res.CustomerDir = baseDir

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		format := formValue(form, i, "format")
		paper := formValue(form, i, "paper")
		if format == "" && paper == "" {
			break
		}
		colorMode := formValue(form, i, "colorMode")
		if colorMode == "" {
			colorMode = "kolor"
		}
		quantity := formValue(form, i, "quantity")
		if quantity == "" {
			quantity = "1"
		}
		price, err := strconv.ParseFloat(formValue(form, i, "price"), 64)
		if err != nil {
			price = 0
		}

		// The format directory exists even when the image part turns out to
		// be missing below; skipped indices leave an empty folder behind.
		subDir := fmt.Sprintf("%s_%s", sanitizeComponent(format), sanitizeComponent(paper))
		if err := os.MkdirAll(filepath.Join(baseDir, subDir), 0o755); err != nil {
			return res, fmt.Errorf("create format dir: %w", err)
		}

		fh := formFile(form, i)
		if fh == nil {
			// Historical behavior: metadata without an image part is
			// dropped silently and the batch still succeeds.
			s.log.Warn("order index has no image part, skipping", "index", i)
			continue
		}

		fileNumber := i + 1
		fileName := fmt.Sprintf("%sszt_%s_%d.jpg", sanitizeComponent(quantity), sanitizeComponent(colorMode), fileNumber)
		dest := filepath.Join(baseDir, subDir, fileName)
		if err := saveFile(fh, dest); err != nil {
			return res, fmt.Errorf("save image %d: %w", i, err)
		}

		res.Saved++
		res.TotalPrice += price
		res.Entries = append(res.Entries, Entry{
			FileNumber: fileNumber,
			Format:     format,
			Paper:      paper,
			ColorMode:  colorMode,
			Quantity:   quantity,
			Price:      price,
			Dir:        subDir,
			FileName:   fileName,
		})
	}

	manifestPath, err := s.writeManifest(baseDir, customer, res)
	if err != nil {
		return res, err
	}
	res.ManifestPath = manifestPath

	s.log.Info("batch ingested",
		"customer_dir", customerDir,
		"saved", res.Saved,
		"total_price", res.TotalPrice,
	)
	return res, nil
}

func formValue(form *multipart.Form, i int, key string) string {
	if form == nil {
		return ""
	}
	if v := form.Value[fmt.Sprintf("orders[%d][%s]", i, key)]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func formFile(form *multipart.Form, i int) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if fhs := form.File[fmt.Sprintf("orders[%d][image]", i)]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

func saveFile(fh *multipart.FileHeader, dest string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open part: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// sanitizeComponent keeps customer-controlled strings usable as a single path
// element: separators and traversal sequences are stripped.
func sanitizeComponent(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, "..", "")
	s = strings.Trim(s, ". ")
	if s == "" {
		return "_"
	}
	return s
}
