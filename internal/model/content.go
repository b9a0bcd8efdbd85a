package model

import "time"

// NavItem is a top-level navigation entry.
type NavItem struct {
	Path  string
	Label string
}

// TrainingLevel describes one of the club's training groups.
type TrainingLevel struct {
	ID          string
	Title       string
	Description string
	Price       int
	Schedule    string
	Days        string
	Trainer     string
	Features    []string
}

// SlotStatus reports how full a scheduled session is.
type SlotStatus string

const (
	SlotMany SlotStatus = "many"
	SlotFew  SlotStatus = "few"
	SlotFull SlotStatus = "full"
)

// ScheduleSlot is a static schedule entry shown on the home page.
type ScheduleSlot struct {
	ID        string
	Time      string
	Title     string
	Hall      string
	Status    SlotStatus
	Remaining int
}

// FAQItem is one question with its rendered answer.
type FAQItem struct {
	Question string
	Answer   string
}

// MembershipCategory groups memberships by audience.
type MembershipCategory string

const (
	CategoryAdults   MembershipCategory = "adults"
	CategoryKids     MembershipCategory = "kids"
	CategoryPersonal MembershipCategory = "personal"
)

// Membership mirrors the upstream membership resource.
type Membership struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Type         string             `json:"type"`
	Category     MembershipCategory `json:"category,omitempty"`
	Price        int                `json:"price"`
	SessionCount int                `json:"sessionCount"`
	IsVisible    bool               `json:"isVisible"`
}

// PricePerSession returns the price of a single session in the membership.
func (m Membership) PricePerSession() int {
	if m.SessionCount <= 0 {
		return m.Price
	}

	return m.Price / m.SessionCount
}

// Location is a hall where sessions take place.
type Location struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Category is a session category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Session mirrors the upstream training session resource.
type Session struct {
	ID             int       `json:"id"`
	Datetime       time.Time `json:"datetime"`
	Location       Location  `json:"location"`
	Category       Category  `json:"category"`
	Trainers       []string  `json:"trainers"`
	Name           string    `json:"name"`
	MaxSpots       int       `json:"maxSpots"`
	AvailableSpots int       `json:"availableSpots"`
	Status         string    `json:"status"`
}

// Snapshot is the read-only live data captured before a run.
type Snapshot struct {
	FetchedAt   time.Time    `json:"fetchedAt"`
	BasePrice   int          `json:"basePrice"`
	Memberships []Membership `json:"memberships"`
	Sessions    []Session    `json:"sessions,omitempty"`
	Locations   []Location   `json:"locations,omitempty"`
}
