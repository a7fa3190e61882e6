package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/kazlearn-backend/internal/domain/achievement"
	"github.com/yungbote/kazlearn-backend/internal/domain/content"
	"github.com/yungbote/kazlearn-backend/internal/domain/quiz"
)

//go:embed default.yaml
var defaultCatalogue []byte

// namespace roots every deterministic seed id.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://kazlearn.kz/seed"))

// ID derives a stable uuid for a catalogue entry so re-seeding updates rows
// in place instead of duplicating them.
func ID(kind, key string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(kind+"/"+key))
}

type Catalogue struct {
	Courses  []CourseSpec  `yaml:"courses"`
	Grammar  []GrammarSpec `yaml:"grammar"`
	Trophies []TrophySpec  `yaml:"trophies"`
	DemoUser *DemoUserSpec `yaml:"demo_user"`
}

type CourseSpec struct {
	Key           string         `yaml:"key"`
	TitleEn       string         `yaml:"title_en"`
	TitleKk       string         `yaml:"title_kk"`
	TitleRu       string         `yaml:"title_ru"`
	DescriptionEn string         `yaml:"description_en"`
	DescriptionKk string         `yaml:"description_kk"`
	DescriptionRu string         `yaml:"description_ru"`
	Level         string         `yaml:"level"`
	OrderIndex    int            `yaml:"order_index"`
	Lessons       []LessonSpec   `yaml:"lessons"`
	Questions     []QuestionSpec `yaml:"questions"`
}

type LessonSpec struct {
	Key         string     `yaml:"key"`
	TitleEn     string     `yaml:"title_en"`
	TitleKk     string     `yaml:"title_kk"`
	TitleRu     string     `yaml:"title_ru"`
	ContentEn   string     `yaml:"content_en"`
	ContentKk   string     `yaml:"content_kk"`
	ContentRu   string     `yaml:"content_ru"`
	LessonOrder int        `yaml:"lesson_order"`
	Words       []WordSpec `yaml:"words"`
}

type WordSpec struct {
	Kazakh        string `yaml:"kazakh"`
	English       string `yaml:"english"`
	Russian       string `yaml:"russian"`
	Pronunciation string `yaml:"pronunciation"`
	ExampleKk     string `yaml:"example_kk"`
	ExampleEn     string `yaml:"example_en"`
	ExampleRu     string `yaml:"example_ru"`
	WordType      string `yaml:"word_type"`
}

type QuestionSpec struct {
	Key           string   `yaml:"key"`
	TextEn        string   `yaml:"text_en"`
	TextKk        string   `yaml:"text_kk"`
	TextRu        string   `yaml:"text_ru"`
	Type          string   `yaml:"type"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Options       []string `yaml:"options"`
	Points        int      `yaml:"points"`
	OrderIndex    int      `yaml:"order_index"`
}

type GrammarSpec struct {
	Key           string            `yaml:"key"`
	Category      string            `yaml:"category"`
	TitleEn       string            `yaml:"title_en"`
	TitleKk       string            `yaml:"title_kk"`
	TitleRu       string            `yaml:"title_ru"`
	ExplanationEn string            `yaml:"explanation_en"`
	ExplanationKk string            `yaml:"explanation_kk"`
	ExplanationRu string            `yaml:"explanation_ru"`
	Examples      map[string]string `yaml:"examples"`
	Difficulty    string            `yaml:"difficulty"`
	OrderIndex    int               `yaml:"order_index"`
}

type TrophySpec struct {
	Key              string `yaml:"key"`
	NameEn           string `yaml:"name_en"`
	NameKk           string `yaml:"name_kk"`
	NameRu           string `yaml:"name_ru"`
	DescriptionEn    string `yaml:"description_en"`
	DescriptionKk    string `yaml:"description_kk"`
	DescriptionRu    string `yaml:"description_ru"`
	Icon             string `yaml:"icon"`
	RequirementType  string `yaml:"requirement_type"`
	RequirementValue int    `yaml:"requirement_value"`
}

type DemoUserSpec struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Default returns the catalogue compiled into the binary.
func Default() (*Catalogue, error) {
	return Parse(bytes.NewReader(defaultCatalogue))
}

func LoadFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Catalogue, error) {
	var cat Catalogue
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks keys are present and unique per kind and that every
// enumerated field holds a known value.
func (c *Catalogue) Validate() error {
	seen := map[string]bool{}
	claim := func(kind, key string) error {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%s without key", kind)
		}
		k := kind + "/" + key
		if seen[k] {
			return fmt.Errorf("duplicate %s key %q", kind, key)
		}
		seen[k] = true
		return nil
	}

	for _, cs := range c.Courses {
		if err := claim("course", cs.Key); err != nil {
			return err
		}
		if _, err := content.ParseLevel(cs.Level); err != nil {
			return fmt.Errorf("course %q: %w", cs.Key, err)
		}
		for _, ls := range cs.Lessons {
			if err := claim("lesson", ls.Key); err != nil {
				return err
			}
			for _, ws := range ls.Words {
				if strings.TrimSpace(ws.Kazakh) == "" || strings.TrimSpace(ws.English) == "" {
					return fmt.Errorf("lesson %q: word needs kazakh and english", ls.Key)
				}
				if err := claim("word", ls.Key+"/"+ws.Kazakh); err != nil {
					return err
				}
			}
		}
		for _, qs := range cs.Questions {
			if err := claim("question", qs.Key); err != nil {
				return err
			}
			if _, err := quiz.ParseQuestionType(qs.Type); err != nil {
				return fmt.Errorf("question %q: %w", qs.Key, err)
			}
			if qs.Points < 0 {
				return fmt.Errorf("question %q: negative points", qs.Key)
			}
		}
	}
	for _, gs := range c.Grammar {
		if err := claim("grammar", gs.Key); err != nil {
			return err
		}
		if _, err := content.ParseLevel(gs.Difficulty); err != nil {
			return fmt.Errorf("grammar %q: %w", gs.Key, err)
		}
	}
	for _, ts := range c.Trophies {
		if err := claim("trophy", ts.Key); err != nil {
			return err
		}
		if _, err := achievement.ParseRequirementType(ts.RequirementType); err != nil {
			return fmt.Errorf("trophy %q: %w", ts.Key, err)
		}
		if ts.RequirementValue < 0 {
			return fmt.Errorf("trophy %q: negative requirement value", ts.Key)
		}
	}
	return nil
}
