package models

// Category keys the dashboard knows how to display.
const (
	CategoryLanguage = "language_models"
	CategoryImage    = "image_models"
	CategoryCode     = "code_models"
)

// DefaultCompanyClass is the style-class key used when a company is not
// listed in a category's company map.
const DefaultCompanyClass = "default"

// Category describes how one payload category is titled and styled.
type Category struct {
	Key        string
	Title      string
	CompanyMap map[string]string
}

// CompanyClass returns the style-class key for company within this category.
func (c Category) CompanyClass(company string) string {
	if class, ok := c.CompanyMap[company]; ok {
		return class
	}
	return DefaultCompanyClass
}

// categories is fixed at build time and never mutated; callers get copies.
var categories = [...]Category{
	{
		Key:   CategoryLanguage,
		Title: "💬 Large Language Models",
		CompanyMap: map[string]string{
			"OpenAI":    "openai",
			"Google":    "google",
			"Anthropic": "anthropic",
			"Meta":      "meta",
		},
	},
	{
		Key:   CategoryImage,
		Title: "🎨 Image Generation",
		CompanyMap: map[string]string{
			"Stability AI": "stability",
			"OpenAI":       "openai",
		},
	},
	{
		Key:   CategoryCode,
		Title: "💻 Code Generation",
		CompanyMap: map[string]string{
			"Microsoft": "microsoft",
			"Anthropic": "anthropic",
		},
	},
}

// Categories returns the configured categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.clone()
	}
	return out
}

// LookupCategory returns the configured category for key.
func LookupCategory(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c.clone(), true
		}
	}
	return Category{}, false
}

func (c Category) clone() Category {
	m := make(map[string]string, len(c.CompanyMap))
	for k, v := range c.CompanyMap {
		m[k] = v
	}
	c.CompanyMap = m
	return c
}
