package catalog

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// catalogFile matches the scraper output: a timestamp plus the food list.
// Older dumps were a bare array; both shapes load.
type catalogFile struct {
	Timestamp string            `json:"timestamp"`
	Foods     []models.FoodItem `json:"foods"`
}

// LoadFile reads the scraped catalog from disk. A missing or unreadable file
// yields an empty catalog, never an error: the app degrades to an explicit
// empty state. A stale timestamp is logged (the menu changes at midnight)
// but the data is still returned.
func LoadFile(path string) []models.FoodItem {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Catalog file %s not readable: %v. Run the scraper to generate it.", path, err)
		return nil
	}
	return Parse(data)
}

// Parse decodes raw catalog JSON and normalizes every record.
func Parse(data []byte) []models.FoodItem {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil || file.Foods == nil {
		// Old format: a bare array of foods.
		var foods []models.FoodItem
		if err := json.Unmarshal(data, &foods); err != nil {
			log.Printf("Catalog data is malformed: %v", err)
			return nil
		}
		file.Foods = foods
	}

	if file.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, file.Timestamp); err == nil {
			if !sameDay(ts, time.Now()) {
				log.Printf("Catalog data is from %s; menus change at midnight, consider re-scraping.", ts.Format("2006-01-02"))
			}
		}
	}

	out := make([]models.FoodItem, 0, len(file.Foods))
	for _, f := range file.Foods {
		out = append(out, Normalize(f))
	}
	return out
}

// Normalize fills catalog defaults on a raw record. Nutrient fields already
// degraded to unknown during decoding; the text fields get their documented
// defaults here. No input is an error.
func Normalize(f models.FoodItem) models.FoodItem {
	f.Name = strings.TrimSpace(f.Name)
	if f.MealType == "" {
		f.MealType = "unknown"
	}
	return f
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
