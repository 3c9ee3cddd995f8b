package infra

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ReportRowは一括チェック結果CSVの1行です。
type ReportRow struct {
	File         string
	WorkerName   string
	VisaCategory string
	Result       string
	Step         int // 未完了の最初のステップ。すべて完了していれば0
	Field        string
	Message      string
}

type FileExporter interface {
	Write(row ReportRow) error
	Close() error
}

type CSVExporter struct {
	file   *os.File
	writer *csv.Writer
}

func formatStep(step int) string {
	if step == 0 {
		return ""
	}
	return strconv.Itoa(step)
}

func NewCSVExporter(filePath string, headers []string) (*CSVExporter, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("CSVファイルの作成に失敗しました: %w", err)
	}

	// Excelで開けるようにBOMを付ける
	if _, err := file.WriteString("\ufeff"); err != nil {
		file.Close()
		return nil, fmt.Errorf("BOMの書き込みに失敗しました: %w", err)
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(headers); err != nil {
		file.Close()
		return nil, fmt.Errorf("CSVヘッダーの書き込みに失敗しました: %w", err)
	}

	return &CSVExporter{
		file:   file,
		writer: writer,
	}, nil
}

func (c *CSVExporter) Write(row ReportRow) error {
	return c.writer.Write([]string{
		row.File,
		row.WorkerName,
		row.VisaCategory,
		row.Result,
		formatStep(row.Step),
		row.Field,
		row.Message,
	})
}

func (c *CSVExporter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("CSVの書き込みに失敗しました: %w", err)
	}
	return c.file.Close()
}

// ArtifactExporterは生成したPDFを出力ディレクトリに保存します。
type ArtifactExporter interface {
	Save(subdir, filename string, content []byte) (string, error)
}

type pdfFileExporter struct {
	outputDir string
}

func NewPDFFileExporter(outputDir string) ArtifactExporter {
	return &pdfFileExporter{outputDir: outputDir}
}

// Saveは、PDFをoutputDir/subdir/filenameに書き込みます。
//
// args:
//
//	subdir: 回答ファイルごとのサブディレクトリ
//	filename: 保存ファイル名
//	content: PDFのバイト列
//
// return:
//
//	string: 保存先のパス
//	error: 失敗時のエラー
func (p *pdfFileExporter) Save(subdir, filename string, content []byte) (string, error) {
	dir := filepath.Join(p.outputDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("PDFファイルの書き込みに失敗しました: %w", err)
	}
	return path, nil
}
