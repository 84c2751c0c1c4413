package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Generator is an interface so handlers can be tested with a fake.
type Generator interface {
	GenerateReceipt(data ReceiptData) (string, error)
}

// ReceiptGenerator renders dispatch receipts under RootDir.
type ReceiptGenerator struct {
	RootDir string
}

type ReceiptData struct {
	OrderID        int
	Name           string
	Product        string
	Price          float64
	Quantity       int
	TrackingNumber string
}

func NewReceiptGenerator(rootDir string) *ReceiptGenerator {
	return &ReceiptGenerator{RootDir: filepath.Clean(rootDir)}
}

// GenerateReceipt writes Receipt_<name>.pdf and returns its absolute path.
func (g *ReceiptGenerator) GenerateReceipt(data ReceiptData) (string, error) {
	filename := fmt.Sprintf("Receipt_%s.pdf", sanitize(data.Name))
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Receipt for %s", data.Name), false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Receipt for %s", data.Name), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	g.addLines(pdf, []string{
		fmt.Sprintf("Order #: %d", data.OrderID),
		fmt.Sprintf("Product: %s", data.Product),
		fmt.Sprintf("Price: Rs.%.2f", data.Price),
		fmt.Sprintf("Quantity: %d", data.Quantity),
		fmt.Sprintf("Amount: Rs.%.2f", data.Price*float64(data.Quantity)),
		fmt.Sprintf("Tracking#: %s", data.TrackingNumber),
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReceiptGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReceiptGenerator) addLines(pdf *gofpdf.Fpdf, lines []string) {
	pdf.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		pdf.SetX(20)
		pdf.Cell(0, 8, line)
		pdf.Ln(10)
	}
}

func sanitize(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return r.Replace(name)
}
