package site

import (
	"html/template"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// Page is a render unit: a page template plus the data it is executed with.
type Page struct {
	// Name selects templates/pages/<Name>.html and is emitted as the data-page marker.
	Name  string
	Title string
	Data  func(state State, ctx m.RenderContext) (any, error)
}

type homeData struct {
	Levels    []m.TrainingLevel
	Slots     []m.ScheduleSlot
	BasePrice int
}

type trainingData struct {
	Levels  []m.TrainingLevel
	Pricing Pricing
}

type scheduleData struct {
	Slots     []m.ScheduleSlot
	Halls     []string
	BasePrice int
}

type faqEntry struct {
	Question string
	Answer   template.HTML
}

type documentData struct {
	Title   string
	Updated string
	Body    template.HTML
}

type notFoundData struct {
	Path string
}

var (
	HomePage = &Page{
		Name:  "home",
		Title: "Главная",
		Data: func(s State, _ m.RenderContext) (any, error) {
			return homeData{Levels: s.Levels, Slots: s.Slots, BasePrice: s.Pricing.BasePrice}, nil
		},
	}

	TrainingPage = &Page{
		Name:  "training",
		Title: "Тренировки",
		Data: func(s State, _ m.RenderContext) (any, error) {
			return trainingData{Levels: s.Levels, Pricing: s.Pricing}, nil
		},
	}

	SchedulePage = &Page{
		Name:  "schedule",
		Title: "Расписание",
		Data: func(s State, _ m.RenderContext) (any, error) {
			return scheduleData{Slots: s.Slots, Halls: s.Club.Halls, BasePrice: s.Pricing.BasePrice}, nil
		},
	}

	ContactsPage = &Page{
		Name:  "contacts",
		Title: "Контакты",
		Data: func(s State, _ m.RenderContext) (any, error) {
			return s.Club, nil
		},
	}

	FAQPage = &Page{
		Name:  "faq",
		Title: "FAQ",
		Data: func(s State, _ m.RenderContext) (any, error) {
			items := make([]faqEntry, len(s.FAQ))
			for i, item := range s.FAQ {
				// Answers are sanitized when the content is loaded.
				items[i] = faqEntry{Question: item.Question, Answer: template.HTML(item.Answer)} //nolint:gosec
			}

			return items, nil
		},
	}

	PrivacyPolicyPage = &Page{
		Name:  "privacy-policy",
		Title: "Политика конфиденциальности",
		Data: func(s State, _ m.RenderContext) (any, error) {
			return documentData{
				Title:   s.Privacy.Title,
				Updated: s.Privacy.Updated,
				Body:    template.HTML(s.Privacy.Body), //nolint:gosec
			}, nil
		},
	}

	NotFoundPage = &Page{
		Name:  "not-found",
		Title: "Страница не найдена",
		Data: func(_ State, ctx m.RenderContext) (any, error) {
			return notFoundData{Path: ctx.Pathname}, nil
		},
	}
)
