package dashboard

import (
	"net/url"
	"strings"

	"github.com/dalemusser/modeldash/internal/app/system/formatting"
	"github.com/dalemusser/modeldash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/modeldash/internal/domain/models"
)

// PlaceholderDescription is shown on cards whose record has no description.
const PlaceholderDescription = "Advanced AI model with cutting-edge capabilities and performance."

// maxCardTags is how many of a record's tags a card shows before the size tag.
const maxCardTags = 3

// CardVM is the view model for one model card.
type CardVM struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	CompanyClass string   `json:"company_class"`
	Glyph        string   `json:"glyph"`
	DisplayName  string   `json:"display_name"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Downloads    string   `json:"downloads"`
	Likes        string   `json:"likes"`
	Tags         []string `json:"tags"`
	HFURL        string   `json:"hf_url"`
}

// SectionVM is one titled category section of cards.
type SectionVM struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Cards []CardVM `json:"cards"`
}

// NewCardVM builds the card for one record. It never fails; missing optional
// fields fall back to placeholders.
func NewCardVM(m models.Model, category, companyClass string) CardVM {
	desc := htmlsanitize.PlainText(m.Description)
	if desc == "" {
		desc = PlaceholderDescription
	}

	n := len(m.Tags)
	if n > maxCardTags {
		n = maxCardTags
	}
	tags := make([]string, 0, n+1)
	tags = append(tags, m.Tags[:n]...)
	if m.HasModelSize() {
		tags = append(tags, m.ModelSize)
	}

	return CardVM{
		ID:           m.ID,
		Category:     category,
		CompanyClass: companyClass,
		Glyph:        formatting.CompanyGlyph(m.Company),
		DisplayName:  m.DisplayName,
		Company:      m.Company,
		Description:  desc,
		Downloads:    formatting.FormatCount(m.Downloads),
		Likes:        formatting.FormatCount(m.Likes),
		Tags:         tags,
		HFURL:        HuggingFaceURL(m.HFID),
	}
}

// HuggingFaceURL returns the model page for a Hugging Face repo ID such as
// "google/gemma-7b".
func HuggingFaceURL(hfID string) string {
	u := url.URL{
		Scheme: "https",
		Host:   "huggingface.co",
		Path:   "/" + strings.TrimLeft(hfID, "/"),
	}
	return u.String()
}

// BuildSections derives the sections to render from a payload: one per
// configured category, in configured order, skipping categories that are
// absent or empty. Payload keys outside the configuration are ignored.
func BuildSections(payload models.Payload) []SectionVM {
	var sections []SectionVM
	for _, cat := range models.Categories() {
		records := payload[cat.Key]
		if len(records) == 0 {
			continue
		}
		cards := make([]CardVM, 0, len(records))
		for _, m := range records {
			cards = append(cards, NewCardVM(m, cat.Key, cat.CompanyClass(m.Company)))
		}
		sections = append(sections, SectionVM{Key: cat.Key, Title: cat.Title, Cards: cards})
	}
	return sections
}
