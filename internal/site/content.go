package site

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	m "smashers.dev/pkg/sitegen/internal/model"
)

const (
	faqFile     = "content/faq.yaml"
	privacyFile = "content/privacy-policy.md"
)

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Table))
	sanitizer = bluemonday.UGCPolicy()
)

var clubInfo = Club{
	Name:         "Smashers",
	Telegram:     "smashers_bc",
	Phone:        "+7 (900) 000-00-00",
	Email:        "hello@smashers.club",
	Address:      "Москва, ул. Спортивная, 12",
	Announcement: "Первая тренировка для начинающих бесплатно",
	Halls:        []string{"ЗАЛ А", "ЗАЛ Б"},
}

var navItems = []m.NavItem{
	{Path: "/", Label: "Главная"},
	{Path: "/training", Label: "Тренировки"},
	{Path: "/schedule", Label: "Расписание"},
	{Path: "/contacts", Label: "Контакты"},
	{Path: "/faq", Label: "FAQ"},
}

var trainingLevels = []m.TrainingLevel{
	{
		ID:          "01",
		Title:       "ДЛЯ НАЧИНАЮЩИХ",
		Description: "Постановка хвата, базовая работа ног и первые розыгрыши.",
		Price:       0,
		Schedule:    "19:00 - 21:00",
		Days:        "ПН / СР / ПТ",
		Trainer:     "Алексей Смирнов",
		Features:    []string{"Инвентарь включен", "Группы до 12 человек"},
	},
	{
		ID:          "02",
		Title:       "СРЕДНИЙ УРОВЕНЬ",
		Description: "Тактика парной игры, атакующие удары и игровая практика.",
		Price:       1200,
		Schedule:    "20:00 - 22:00",
		Days:        "ВТ / ЧТ",
		Trainer:     "Мария Иванова",
		Features:    []string{"Разбор видео", "Турниры внутри клуба"},
	},
}

var scheduleSlots = []m.ScheduleSlot{
	{ID: "s1", Time: "08:00", Title: "УТРЕННЯЯ ГРУППА", Hall: "ЗАЛ А", Status: m.SlotMany},
	{ID: "s2", Time: "10:30", Title: "LADY BADMINTON", Hall: "ЗАЛ Б", Status: m.SlotFew, Remaining: 2},
	{ID: "s3", Time: "18:00", Title: "PRO LEAGUE", Hall: "ЗАЛ А", Status: m.SlotFull},
}

type faqFileContent struct {
	Items []struct {
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"items"`
}

type documentMeta struct {
	Title   string `yaml:"title"`
	Updated string `yaml:"updated"`
}

// LoadState builds the shared page state from the content files in fsys.
func LoadState(fsys fs.FS) (State, error) {
	faq, err := loadFAQ(fsys)
	if err != nil {
		return State{}, err
	}

	privacy, err := loadDocument(fsys, privacyFile)
	if err != nil {
		return State{}, err
	}

	return State{
		Club:    clubInfo,
		Nav:     navItems,
		Levels:  trainingLevels,
		Slots:   scheduleSlots,
		FAQ:     faq,
		Privacy: privacy,
		Pricing: BuildPricing(m.Snapshot{}),
	}, nil
}

func loadFAQ(fsys fs.FS) ([]m.FAQItem, error) {
	data, err := fs.ReadFile(fsys, faqFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", faqFile, err)
	}

	var content faqFileContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse %s: %w", faqFile, err)
	}

	items := make([]m.FAQItem, 0, len(content.Items))
	for i, item := range content.Items {
		if item.Question == "" {
			return nil, fmt.Errorf("%s: item %d has no question", faqFile, i)
		}

		answer, err := renderMarkdown([]byte(item.Answer))
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", faqFile, i, err)
		}

		items = append(items, m.FAQItem{Question: item.Question, Answer: answer})
	}

	return items, nil
}

func loadDocument(fsys fs.FS, name string) (Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	var meta documentMeta

	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("parse front matter of %s: %w", name, err)
	}

	if meta.Title == "" {
		return Document{}, errors.New(name + ": front matter has no title")
	}

	html, err := renderMarkdown(body)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", name, err)
	}

	return Document{Title: meta.Title, Updated: meta.Updated, Body: html}, nil
}

// renderMarkdown converts markdown to sanitized HTML.
func renderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
