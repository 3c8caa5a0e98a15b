package agrimithra

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flarexio/agrimithra/vector"
)

var (
	ErrInvalidDocument     = errors.New("invalid document")
	ErrDocumentExists      = errors.New("document already exists")
	ErrIndexCorpusMismatch = errors.New("index size does not match corpus")
	ErrCacheNotFound       = errors.New("vector cache not found")
	ErrGuideNotFound       = errors.New("crop guide not found")
	ErrNotInitialized      = errors.New("knowledge base not initialized")
)

const (
	InsufficientInformationMessage = "I don't have enough information to answer this query. Please try asking something else."
	EmptyQueryMessage              = "Please provide a query."
	ApologyMessage                 = "I apologize, but I encountered an error while processing your query. Please try again or contact support if the issue persists."
	Disclaimer                     = "Note: Always consult with your local agricultural extension officer for advice specific to your region and conditions."
)

const (
	DefaultTopK      = 5
	DefaultFollowups = 2
	MaxSources       = 3
)

type Config struct {
	Corpus         CorpusConfig  `yaml:"corpus"`
	Vector         vector.Config `yaml:"vector"`
	TopK           int           `yaml:"topK"`
	Followups      int           `yaml:"followups"`
	FollowupSeed   uint64        `yaml:"followupSeed"`
	RequestTimeout Duration      `yaml:"requestTimeout"`
}

type CorpusConfig struct {
	Path string `yaml:"path"`
	Seed bool   `yaml:"seed"`
	Lazy bool   `yaml:"lazy"`
}

type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	str := d.Duration().String()
	return json.Marshal(str)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.Duration().String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

type Category string

const (
	CategoryCropDisease  Category = "crop_disease"
	CategoryMarketPrices Category = "market_prices"
	CategoryWeather      Category = "weather"
	CategoryGovtSchemes  Category = "govt_schemes"
	CategoryFertilizers  Category = "fertilizers"
	CategoryPestControl  Category = "pest_control"
	CategoryCropGuide    Category = "crop_guide"
	CategoryGeneral      Category = "general"
)

// Name returns the display form, e.g. "Market Prices".
func (c Category) Name() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}

		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}

// Document is a single advisory record. Content holds flat text; Guide holds
// the structured form used by crop guides. Either may be empty, not both.
type Document struct {
	Title    string            `json:"title"`
	Category Category          `json:"category"`
	Content  string            `json:"content,omitempty"`
	Guide    *Guide            `json:"guide,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Created  time.Time         `json:"created,omitempty"`
}

type Guide struct {
	Summary    string      `json:"summary,omitempty"`
	Varieties  string      `json:"varieties,omitempty"`
	Fertilizer *Fertilizer `json:"fertilizer_management,omitempty"`
	Pests      []Remedy    `json:"pest_management,omitempty"`
	Diseases   []Remedy    `json:"disease_management,omitempty"`
}

type Fertilizer struct {
	Organic  string `json:"organic,omitempty"`
	Chemical string `json:"chemical,omitempty"`
	Schedule string `json:"schedule,omitempty"`
}

type Remedy struct {
	Name     string `json:"name"`
	Solution string `json:"solution"`
}

// Key derives the filesystem-safe identity of the document.
func (doc Document) Key() string {
	return strings.ReplaceAll(strings.TrimSpace(doc.Title), " ", "_")
}

// Text reduces the document to flat text for embedding and lexical scoring.
func (doc Document) Text() string {
	if doc.Guide == nil {
		return doc.Content
	}

	g := doc.Guide
	parts := []string{doc.Title}

	if doc.Content != "" {
		parts = append(parts, doc.Content)
	}

	if g.Summary != "" {
		parts = append(parts, g.Summary)
	}

	if g.Varieties != "" {
		parts = append(parts, g.Varieties)
	}

	if f := g.Fertilizer; f != nil {
		parts = append(parts, f.Organic, f.Chemical, f.Schedule)
	}

	for _, r := range g.Pests {
		parts = append(parts, r.Name+": "+r.Solution)
	}

	for _, r := range g.Diseases {
		parts = append(parts, r.Name+": "+r.Solution)
	}

	return strings.Join(parts, " ")
}

func (doc Document) Validate() error {
	if !safeName(doc.Key()) {
		return ErrInvalidDocument
	}

	if strings.TrimSpace(doc.Text()) == "" {
		return ErrInvalidDocument
	}

	if doc.Category != "" && !safeName(string(doc.Category)) {
		return ErrInvalidDocument
	}

	return nil
}

func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}

type Match struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

type RetrievalMode string

const (
	ModeVector  RetrievalMode = "vector"
	ModeLexical RetrievalMode = "lexical"
)

type AddStatus string

const (
	AddStatusSuccess        AddStatus = "success"
	AddStatusPartialSuccess AddStatus = "partial_success"
	AddStatusError          AddStatus = "error"
)

type AskRequest struct {
	Query    string   `json:"query" form:"query"`
	Category Category `json:"category,omitempty" form:"category"`
	TopK     int      `json:"top_k,omitempty" form:"top_k"`
}

type Source struct {
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Score    float64  `json:"score"`
}

type Answer struct {
	ID                 string        `json:"id"`
	Query              string        `json:"query"`
	Category           Category      `json:"category"`
	Answer             string        `json:"answer"`
	Sources            []Source      `json:"sources"`
	Mode               RetrievalMode `json:"mode,omitempty"`
	Timestamp          time.Time     `json:"timestamp"`
	SuggestedFollowups []string      `json:"suggested_followups,omitempty"`
}

type CategoryInfo struct {
	ID              Category `json:"id"`
	Name            string   `json:"name"`
	SampleQuestions []string `json:"sample_questions"`
}

type Status struct {
	Mode      RetrievalMode `json:"mode"`
	Embedder  string        `json:"embedder,omitempty"`
	Documents int           `json:"documents"`
	Indexed   int           `json:"indexed"`
}

// VectorCache is the persisted vector list for a corpus. Keys and Vectors
// are parallel; an empty vector marks a document that was never encoded.
type VectorCache struct {
	Fingerprint string
	Dimension   int
	Keys        []string
	Vectors     [][]float32
}

// Repository persists documents per category and the corpus vector cache.
type Repository interface {
	Documents(ctx context.Context) ([]Document, error)
	Store(ctx context.Context, doc Document) error
	LoadVectors(ctx context.Context) (*VectorCache, error)
	SaveVectors(ctx context.Context, cache *VectorCache) error
}
