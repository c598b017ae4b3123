package model

import "time"

// Content holds the static landing-page sections. Lists replace the defaults
// wholesale when an override file provides them.
type Content struct {
	Hero         Hero         `yaml:"hero" json:"hero"`
	Urgency      Banner       `yaml:"urgency" json:"urgency"`
	About        About        `yaml:"about" json:"about"`
	Vacancies    Vacancies    `yaml:"vacancies" json:"vacancies"`
	Requirements Requirements `yaml:"requirements" json:"requirements"`
	Process      Process      `yaml:"process" json:"process"`
	FAQ          FAQ          `yaml:"faq" json:"faq"`
	Links        Links        `yaml:"links" json:"links"`
}

type Hero struct {
	Badge    string    `yaml:"badge" json:"badge"`
	Headline string    `yaml:"headline" json:"headline"`
	Title    string    `yaml:"title" json:"title"`
	Subtitle string    `yaml:"subtitle" json:"subtitle"`
	Stats    []Stat    `yaml:"stats" json:"stats"`
	Deadline time.Time `yaml:"deadline" json:"deadline"`
}

type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Banner struct {
	Title   string `yaml:"title" json:"title"`
	Message string `yaml:"message" json:"message"`
}

type About struct {
	Title    string    `yaml:"title" json:"title"`
	Body     string    `yaml:"body" json:"body"`
	Features []Feature `yaml:"features" json:"features"`
}

type Feature struct {
	Title      string `yaml:"title" json:"title"`
	TitleHindi string `yaml:"title_hindi" json:"title_hindi"`
}

type Vacancies struct {
	Title string    `yaml:"title" json:"title"`
	Intro string    `yaml:"intro" json:"intro"`
	Items []Vacancy `yaml:"items" json:"items"`
}

type Vacancy struct {
	Title        string `yaml:"title" json:"title"`
	Requirements string `yaml:"requirements" json:"requirements"`
	Salary       string `yaml:"salary" json:"salary"`
	TA           string `yaml:"ta,omitempty" json:"ta,omitempty"`
}

type Requirements struct {
	Items []Item `yaml:"items" json:"items"`
	Note  string `yaml:"note" json:"note"`
}

type Item struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Process struct {
	Steps []Item `yaml:"steps" json:"steps"`
}

type FAQ struct {
	Items []Question `yaml:"items" json:"items"`
}

type Question struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type Links struct {
	Portal   string `yaml:"portal" json:"portal"`
	Helpline string `yaml:"helpline" json:"helpline"`
}

// Countdown is the time left until the application deadline, computed per
// request.
type Countdown struct {
	Deadline         time.Time `json:"deadline"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	Days             int64     `json:"days"`
	Hours            int64     `json:"hours"`
	Minutes          int64     `json:"minutes"`
	Seconds          int64     `json:"seconds"`
	Expired          bool      `json:"expired"`
}

func NewCountdown(deadline, now time.Time) Countdown {
	left := deadline.Sub(now)
	if left <= 0 || deadline.IsZero() {
		return Countdown{Deadline: deadline, Expired: true}
	}
	secs := int64(left / time.Second)
	return Countdown{
		Deadline:         deadline,
		RemainingSeconds: secs,
		Days:             secs / 86400,
		Hours:            secs % 86400 / 3600,
		Minutes:          secs % 3600 / 60,
		Seconds:          secs % 60,
	}
}
