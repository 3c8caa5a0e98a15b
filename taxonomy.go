package agrimithra

import (
	"fmt"
	"strings"
)

type CategorySpec struct {
	ID        Category
	Keywords  []string
	Intro     string
	Followups []string
	Samples   []string
}

// Taxonomy is the ordered category list. Order decides categorization ties.
type Taxonomy struct {
	specs   []CategorySpec
	general CategorySpec
}

func NewTaxonomy(general CategorySpec, specs ...CategorySpec) *Taxonomy {
	return &Taxonomy{
		specs:   specs,
		general: general,
	}
}

var defaultTaxonomy = NewTaxonomy(
	CategorySpec{
		ID:    CategoryGeneral,
		Intro: "Here's what I found: ",
	},
	CategorySpec{
		ID:       CategoryCropDisease,
		Keywords: []string{"disease", "infection", "spots", "wilting", "blight", "mildew", "rust", "lesion", "fungus", "bacteria", "virus", "treatment"},
		Intro:    "Based on your query about crop disease: ",
		Followups: []string{
			"How quickly does this disease spread?",
			"What are organic treatment options?",
			"How can I prevent this in the future?",
		},
		Samples: []string{
			"My tomato leaves have yellow spots, what is this?",
			"Brown circular lesions on rice leaves, disease name?",
			"How to treat powdery mildew on grapes?",
			"How to identify early blight vs late blight on potato?",
			"Symptoms: wilting in morning, normal by afternoon, cause?",
			"How quickly will this disease spread?",
			"Which fungicide is recommended for this stage?",
			"Organic treatment for leaf spot?",
			"How to prevent fungal disease in rainy season?",
		},
	},
	CategorySpec{
		ID:       CategoryMarketPrices,
		Keywords: []string{"price", "market", "sell", "buying", "cost", "rate", "mandi", "trader", "export", "trend"},
		Intro:    "Regarding market prices: ",
		Followups: []string{
			"What's the price trend forecast for next week?",
			"Where can I get the best price for my crop?",
			"Should I store my harvest or sell now?",
		},
		Samples: []string{
			"What is today's mandi price for onion in Kochi?",
			"Compare price of paddy in Palakkad vs Thrissur",
			"How have prices changed this month for potatoes?",
			"Best place to sell my mangoes near me?",
			"Expected price trend next 7 days for tomato",
			"Price floor / MSP for sugarcane this season?",
		},
	},
	CategorySpec{
		ID:       CategoryWeather,
		Keywords: []string{"rain", "forecast", "weather", "monsoon", "humidity", "temperature", "wind", "storm", "drought", "heat", "frost"},
		Intro:    "About the weather information: ",
		Followups: []string{
			"Is it a good time to spray pesticides?",
			"How will this weather affect my crops?",
			"When is the next dry period for harvesting?",
		},
		Samples: []string{
			"Is there rain expected in my village tomorrow?",
			"What is the 7-day forecast for my GPS location?",
			"Should I delay sowing because of forecast?",
			"Wind speed forecast for next 24 hours (spraying safety)?",
			"Is weather suitable for harvesting today?",
		},
	},
	CategorySpec{
		ID:       CategoryGovtSchemes,
		Keywords: []string{"scheme", "subsidy", "government", "loan", "insurance", "pm-kisan", "pmfby", "application", "eligibility", "document"},
		Intro:    "About government schemes: ",
		Followups: []string{
			"What documents do I need to apply?",
			"When is the deadline for application?",
			"Who do I contact for more information?",
		},
		Samples: []string{
			"What are the current subsidy schemes for drip irrigation?",
			"How to apply for PMFBY crop insurance in my district?",
			"Eligibility for tractor subsidy, documents needed?",
			"Latest scheme for micro-irrigation in Kerala",
			"How to claim compensation for crop loss?",
		},
	},
	CategorySpec{
		ID:       CategoryFertilizers,
		Keywords: []string{"fertilizer", "nutrient", "nitrogen", "phosphorus", "potassium", "npk", "urea", "dap", "micronutrient", "deficiency"},
		Intro:    "For fertilizer recommendations: ",
		Followups: []string{
			"When is the best time to apply this fertilizer?",
			"What are signs of over-fertilization?",
			"Are there organic alternatives?",
		},
		Samples: []string{
			"How much urea and DAP per acre for paddy?",
			"Soil test says N low, what fertilizer & dose?",
			"Time schedule for basal / top dressing for maize",
			"Recommended fertilizer for coconut palms",
			"How to calculate fertilizer per tree for orchard?",
		},
	},
	CategorySpec{
		ID:       CategoryPestControl,
		Keywords: []string{"pest", "insect", "aphid", "borer", "caterpillar", "spray", "pesticide", "biological", "trap", "neem"},
		Intro:    "For pest control: ",
		Followups: []string{
			"Is this pesticide safe for beneficial insects?",
			"How long before I can harvest after spraying?",
			"What preventive measures should I take?",
		},
		Samples: []string{
			"Aphid infestation on cotton, treatment now?",
			"Best IPM steps for stem borer in sugarcane",
			"Safe pesticide for leaf-eating caterpillars on vegetables",
			"How to make neem-based spray recipe?",
			"When is pesticide spraying safe (weather & pollinators)?",
		},
	},
	CategorySpec{
		ID:    CategoryCropGuide,
		Intro: "From the crop guide: ",
		Samples: []string{
			"Fertilizer schedule for rice",
			"How to manage red palm weevil in coconut?",
			"Banana bunchy top virus control",
		},
	},
)

// DefaultTaxonomy returns the built-in advisory categories.
func DefaultTaxonomy() *Taxonomy {
	return defaultTaxonomy
}

func (t *Taxonomy) Specs() []CategorySpec {
	specs := make([]CategorySpec, len(t.specs))
	copy(specs, t.specs)
	return specs
}

// Lookup falls back to the general category for unknown IDs.
func (t *Taxonomy) Lookup(id Category) (CategorySpec, bool) {
	for _, spec := range t.specs {
		if spec.ID == id {
			return spec, true
		}
	}

	if id == t.general.ID {
		return t.general, true
	}

	return t.general, false
}

// Categorize counts case-insensitive substring hits per category. The
// highest count wins, the earliest declared category wins a tie, and a
// query without hits is general.
func (t *Taxonomy) Categorize(query string) Category {
	query = strings.ToLower(query)

	best := t.general.ID
	bestScore := 0

	for _, spec := range t.specs {
		score := 0
		for _, keyword := range spec.Keywords {
			if strings.Contains(query, keyword) {
				score++
			}
		}

		if score > bestScore {
			best = spec.ID
			bestScore = score
		}
	}

	return best
}

// Compose builds the answer text from ranked matches. It never fails: a
// panic while composing yields ApologyMessage.
func (t *Taxonomy) Compose(query string, matches []Match) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			answer = ApologyMessage
		}
	}()

	if len(matches) == 0 {
		return InsufficientInformationMessage
	}

	spec, _ := t.Lookup(dominantCategory(matches))

	var sb strings.Builder
	sb.WriteString(spec.Intro)
	sb.WriteString(matches[0].Document.Text())

	end := min(len(matches), 3)
	if end > 1 {
		extras := make([]string, 0, end-1)
		for _, m := range matches[1:end] {
			extras = append(extras, m.Document.Text())
		}

		sb.WriteString("\n\nAdditional information:\n")
		sb.WriteString(strings.Join(extras, "\n\n"))
	}

	sb.WriteString("\n\n")
	sb.WriteString(Disclaimer)

	return sb.String()
}

// dominantCategory is a majority vote over the matches; the category seen
// first wins a tie.
func dominantCategory(matches []Match) Category {
	counts := make(map[Category]int)
	order := make([]Category, 0)

	for _, m := range matches {
		c := m.Document.Category
		if c == "" {
			c = CategoryGeneral
		}

		if _, ok := counts[c]; !ok {
			order = append(order, c)
		}

		counts[c]++
	}

	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}

	return best
}

// Categories lists every category with at most three sample questions.
func (t *Taxonomy) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(t.specs))
	for _, spec := range t.specs {
		samples := spec.Samples[:min(len(spec.Samples), 3)]

		infos = append(infos, CategoryInfo{
			ID:              spec.ID,
			Name:            spec.ID.Name(),
			SampleQuestions: append([]string{}, samples...),
		})
	}

	return infos
}

// ParseLabel extracts the plant name from a classifier label such as
// "Tomato___Early_blight" or "Corn_(maize)___healthy".
func ParseLabel(label string) string {
	plant, _, _ := strings.Cut(label, "___")
	plant = strings.ReplaceAll(plant, "_", " ")
	return strings.TrimSpace(plant)
}

// FormatGuide renders a structured crop guide as Markdown.
func FormatGuide(doc Document) string {
	g := doc.Guide
	if g == nil {
		g = &Guide{Summary: doc.Content}
	}

	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}

		return s
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Comprehensive Guide: %s\n\n", doc.Title)
	fmt.Fprintf(&sb, "**Summary:** %s\n\n", orNA(g.Summary))
	fmt.Fprintf(&sb, "**Popular Varieties:** %s\n\n", orNA(g.Varieties))

	if f := g.Fertilizer; f != nil {
		sb.WriteString("### Fertilizer Management\n")
		fmt.Fprintf(&sb, "- **Organic:** %s\n", orNA(f.Organic))
		fmt.Fprintf(&sb, "- **Chemical (NPK):** %s\n", orNA(f.Chemical))
		fmt.Fprintf(&sb, "- **Application Schedule:** %s\n\n", orNA(f.Schedule))
	}

	if len(g.Pests) > 0 {
		sb.WriteString("### Pest Management\n")
		for _, r := range g.Pests {
			fmt.Fprintf(&sb, "- **%s:** %s\n", r.Name, r.Solution)
		}
		sb.WriteString("\n")
	}

	if len(g.Diseases) > 0 {
		sb.WriteString("### Disease Management\n")
		for _, r := range g.Diseases {
			fmt.Fprintf(&sb, "- **%s:** %s\n", r.Name, r.Solution)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
