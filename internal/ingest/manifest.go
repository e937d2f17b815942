package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fotoflesz/printshop-backend/internal/order"
)

// ManifestFileName is the per-customer order summary. One file per customer
// directory; a later batch for the same customer overwrites it whole.
const ManifestFileName = "zamowienie.txt"

var manifestClock = time.Now

func (s *Service) writeManifest(baseDir string, customer order.Customer, res Result) (string, error) {
	address := strings.TrimSpace(customer.Address)
	if address == "" {
		address = "-"
	}

	lines := []string{
		fmt.Sprintf("ZAMÓWIENIE – %s", manifestClock().Format("2.01.2006, 15:04:05")),
		fmt.Sprintf("Imię: %s", customer.Name),
		fmt.Sprintf("Nazwisko: %s", customer.Surname),
		fmt.Sprintf("Adres: %s", address),
		fmt.Sprintf("Telefon: %s", customer.Phone),
		"",
		"LISTA ZDJĘĆ:",
	}
	for _, e := range res.Entries {
		lines = append(lines, fmt.Sprintf(
			`%d. Format: %s, Papier: %s, Kolor: %s, Ilość: %s, Cena: %.2f zł → %s\%s`,
			e.FileNumber, e.Format, e.Paper, e.ColorMode, e.Quantity, e.Price, e.Dir, e.FileName,
		))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("RAZEM: %d plików", res.Saved),
		fmt.Sprintf("SUMA: %.2f zł", res.TotalPrice),
	)

	path := filepath.Join(baseDir, ManifestFileName)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
