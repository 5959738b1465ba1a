package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// sampleProducts is the offline catalog served when the database is
// unreachable, so browsing keeps working during outages. It mirrors the
// seed migration.
var sampleProducts = []ProductDTO{
	{
		ID:          "1",
		Name:        "iPhone 15 Pro",
		Description: "Le dernier iPhone avec une caméra révolutionnaire et la puce A17 Pro.",
		Price:       decimal.RequireFromString("1199"),
		ImageURL:    "https://images.pexels.com/photos/788946/pexels-photo-788946.jpeg",
		Stock:       15,
		Category:    "electronics",
		Rating:      4.8,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "2",
		Name:        "MacBook Air M2",
		Description: "Ultrabook performant avec la puce Apple M2 et jusqu'à 18h d'autonomie.",
		Price:       decimal.RequireFromString("1299"),
		ImageURL:    "https://images.pexels.com/photos/205421/pexels-photo-205421.jpeg",
		Stock:       8,
		Category:    "electronics",
		Rating:      4.9,
		CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "3",
		Name:        "T-shirt Premium Cotton",
		Description: "T-shirt en coton bio de qualité supérieure, confortable et durable.",
		Price:       decimal.RequireFromString("29.99"),
		ImageURL:    "https://images.pexels.com/photos/1183266/pexels-photo-1183266.jpeg",
		Stock:       50,
		Category:    "clothing",
		Rating:      4.5,
		CreatedAt:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "4",
		Name:        "Casque Audio Sans Fil",
		Description: "Casque Bluetooth avec réduction de bruit active et 30h d'autonomie.",
		Price:       decimal.RequireFromString("199.99"),
		ImageURL:    "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg",
		Stock:       25,
		Category:    "electronics",
		Rating:      4.7,
		CreatedAt:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "5",
		Name:        "Chaise de Bureau Ergonomique",
		Description: "Chaise de bureau confortable avec support lombaire et accoudoirs ajustables.",
		Price:       decimal.RequireFromString("249.99"),
		ImageURL:    "https://images.pexels.com/photos/2403251/pexels-photo-2403251.jpeg",
		Stock:       12,
		Category:    "home",
		Rating:      4.6,
		CreatedAt:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "6",
		Name:        `Livre: "Le Petit Prince"`,
		Description: "Le classique de Saint-Exupéry, édition illustrée de collection.",
		Price:       decimal.RequireFromString("15.99"),
		ImageURL:    "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg",
		Stock:       100,
		Category:    "books",
		Rating:      4.9,
		CreatedAt:   time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
	},
}

// SampleProducts returns a copy of the offline catalog, newest first.
func SampleProducts() []ProductDTO {
	out := make([]ProductDTO, len(sampleProducts))
	copy(out, sampleProducts)
	// Stored oldest-first above; flip to match the list ordering.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func sampleByID(id string) (ProductDTO, bool) {
	for _, p := range sampleProducts {
		if p.ID == id {
			return p, true
		}
	}
	return ProductDTO{}, false
}

func sampleByCategory(category string) []ProductDTO {
	var out []ProductDTO
	for _, p := range SampleProducts() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func sampleSearch(query string) []ProductDTO {
	needle := strings.ToLower(strings.TrimSpace(query))
	var out []ProductDTO
	for _, p := range SampleProducts() {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}
