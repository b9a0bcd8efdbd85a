package site

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// DefaultBasePrice is the single session price used when no snapshot provides one.
const DefaultBasePrice = 1200

// Club holds the club's contact details.
type Club struct {
	Name         string
	Telegram     string
	Phone        string
	Email        string
	Address      string
	Announcement string
	Halls        []string
}

// Document is a rendered long-form content page.
type Document struct {
	Title   string
	Updated string
	Body    string
}

// MembershipGroup is a set of memberships shown together on the pricing table.
type MembershipGroup struct {
	Category    m.MembershipCategory
	Title       string
	Memberships []m.Membership
}

// Pricing is the pricing block shared by the home and training pages.
type Pricing struct {
	BasePrice int
	Groups    []MembershipGroup
}

// State is the read-only data shared by every page of a run.
type State struct {
	Club    Club
	Nav     []m.NavItem
	Levels  []m.TrainingLevel
	Slots   []m.ScheduleSlot
	FAQ     []m.FAQItem
	Privacy Document
	Pricing Pricing
}

// WithSnapshot returns a copy of the state with pricing taken from snap.
// Captured sessions replace the static schedule and captured locations
// replace the hall list.
func (s State) WithSnapshot(snap m.Snapshot) State {
	s.Pricing = BuildPricing(snap)

	if len(snap.Sessions) > 0 {
		s.Slots = SlotsFromSessions(snap.Sessions)
	}

	if len(snap.Locations) > 0 {
		halls := make([]string, 0, len(snap.Locations))
		for _, loc := range snap.Locations {
			if loc.Name != "" {
				halls = append(halls, loc.Name)
			}
		}

		if len(halls) > 0 {
			s.Club.Halls = halls
		}
	}

	return s
}

// fewSpotsThreshold is the number of free spots at or below which a session
// is shown as nearly full.
const fewSpotsThreshold = 3

// SlotsFromSessions maps upstream sessions onto schedule slots ordered by start time.
func SlotsFromSessions(sessions []m.Session) []m.ScheduleSlot {
	sorted := make([]m.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Datetime.Before(sorted[j].Datetime)
	})

	slots := make([]m.ScheduleSlot, len(sorted))
	for i, session := range sorted {
		slot := m.ScheduleSlot{
			ID:    "session-" + strconv.Itoa(session.ID),
			Time:  session.Datetime.Format("15:04"),
			Title: session.Name,
			Hall:  session.Location.Name,
		}

		switch {
		case session.AvailableSpots <= 0:
			slot.Status = m.SlotFull
		case session.AvailableSpots <= fewSpotsThreshold:
			slot.Status = m.SlotFew
			slot.Remaining = session.AvailableSpots
		default:
			slot.Status = m.SlotMany
		}

		slots[i] = slot
	}

	return slots
}

var categoryTitles = []struct {
	category m.MembershipCategory
	title    string
}{
	{m.CategoryAdults, "Взрослые"},
	{m.CategoryKids, "Дети"},
	{m.CategoryPersonal, "Персональные"},
}

// BuildPricing groups the visible memberships of a snapshot by their category.
// Memberships without a known category are not listed.
func BuildPricing(snap m.Snapshot) Pricing {
	pricing := Pricing{BasePrice: snap.BasePrice}
	if pricing.BasePrice <= 0 {
		pricing.BasePrice = DefaultBasePrice
	}

	for _, c := range categoryTitles {
		var members []m.Membership
		for _, ms := range snap.Memberships {
			if ms.IsVisible && ms.Category == c.category {
				members = append(members, ms)
			}
		}

		if len(members) == 0 {
			continue
		}

		sort.SliceStable(members, func(i, j int) bool {
			if members[i].SessionCount != members[j].SessionCount {
				return members[i].SessionCount < members[j].SessionCount
			}

			return members[i].ID < members[j].ID
		})

		pricing.Groups = append(pricing.Groups, MembershipGroup{
			Category:    c.category,
			Title:       c.title,
			Memberships: members,
		})
	}

	return pricing
}

// DecodeSnapshot parses a snapshot data file.
func DecodeSnapshot(data []byte) (m.Snapshot, error) {
	var snap m.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return m.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	return snap, nil
}

// NavLink is a navigation item resolved against the current path.
type NavLink struct {
	Path   string
	Label  string
	Active bool
}

// BuildNav marks the item matching current as active.
func BuildNav(items []m.NavItem, current string) []NavLink {
	current = Normalize(current)

	links := make([]NavLink, len(items))
	for i, item := range items {
		links[i] = NavLink{Path: item.Path, Label: item.Label, Active: item.Path == current}
	}

	return links
}

// TelegramLink builds a deep link opening a chat with user prefilled with text.
func TelegramLink(user, text string) string {
	link := "https://t.me/" + user
	if text == "" {
		return link
	}

	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
