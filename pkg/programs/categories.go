package programs

import (
	"fmt"
	"strconv"
	"strings"
)

// Category maps a program type to the backend's category identifier
type Category struct {
	Name     string   `json:"name" yaml:"name"`
	ID       int      `json:"category_id" yaml:"category_id"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// categories is the static category table. Resolution walks it in order and
// the first match wins, so entries must not be reordered.
var categories = []Category{
	{Name: "Inner Engineering", ID: 5815, Keywords: []string{"inner engineering", "ie", "shambhavi", "shambhavi mahamudra"}},
	{Name: "Surya Shakti", ID: 148, Keywords: []string{"surya shakti"}},
	{Name: "Surya Kriya", ID: 122, Keywords: []string{"surya kriya"}},
	{Name: "Angamardana", ID: 124, Keywords: []string{"angamardana"}},
	{Name: "Bhuta Shuddhi", ID: 125, Keywords: []string{"bhuta shuddhi", "bhutashuddhi"}},
	{Name: "Yogasanas", ID: 121, Keywords: []string{"yogasanas", "yoga postures", "asanas", "hatha yoga"}},
	{Name: "Bhava Spandana", ID: 7, Keywords: []string{"bhava spandana", "bsp"}},
	{Name: "Shoonya Meditation", ID: 13, Keywords: []string{"shoonya", "shoonya meditation", "meditation"}},
	{Name: "Samyama", ID: 12, Keywords: []string{"samyama"}},
	{Name: "Guru Pooja", ID: 14, Keywords: []string{"guru pooja", "guru poornima"}},
	{Name: "21 Day Sadhana Program", ID: 259, Keywords: []string{"21 day sadhana", "21 days sadhana", "sadhana program"}},
	{Name: "Samyama Sadhana", ID: 105, Keywords: []string{"samyama sadhana"}},
	{Name: "Sunetra Eye Care", ID: 28, Keywords: []string{"sunetra", "eye care"}},
	{Name: "Yoga Chikitsa", ID: 207, Keywords: []string{"yoga chikitsa"}},
	{Name: "Ayur Sampoorna", ID: 17, Keywords: []string{"ayur sampoorna"}},
	{Name: "Joint and Musculoskeletal Disorders Program", ID: 132, Keywords: []string{"joint disorder", "musculoskeletal", "joint program"}},
	{Name: "Pancha Karma", ID: 208, Keywords: []string{"pancha karma", "panchkarma", "panchakarma"}},
	{Name: "Ayur Rasayana Intensive", ID: 16, Keywords: []string{"ayur rasayana intensive"}},
	{Name: "Ayur Sanjeevini", ID: 226, Keywords: []string{"ayur sanjeevini"}},
	{Name: "Yoga Marga", ID: 18, Keywords: []string{"yoga marga"}},
	{Name: "Ayur Rasayana", ID: 10, Keywords: []string{"ayur rasayana"}},
	{Name: "Diabetes Management Program", ID: 131, Keywords: []string{"diabetes", "diabetes management", "diabetes program"}},
	{Name: "Guru Poornima", ID: 22, Keywords: []string{"guru poornima"}},
}

// Categories returns a copy of the category table in declaration order
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{
			Name:     c.Name,
			ID:       c.ID,
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return out
}

// ResolveCategory maps a free-text interest to a category identifier.
// An empty result means no category filter.
func ResolveCategory(interest string) string {
	needle := strings.ToLower(strings.TrimSpace(interest))

	for _, c := range categories {
		if needle == strings.ToLower(c.Name) {
			return strconv.Itoa(c.ID)
		}

		for _, keyword := range c.Keywords {
			if strings.Contains(needle, keyword) || strings.Contains(keyword, needle) {
				return strconv.Itoa(c.ID)
			}
		}
	}

	return ""
}

// FormatCategories renders the category table for display
func FormatCategories() string {
	entries := make([]string, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, fmt.Sprintf("**%s** (ID: %d)\nKeywords: %s",
			c.Name, c.ID, strings.Join(c.Keywords, ", ")))
	}

	return "Available Program Categories:\n\n" + strings.Join(entries, "\n\n")
}
