// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, forms, storage and content can all import types without
// depending on each other.
package types

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Records written by visitors
// ─────────────────────────────────────────────────────────────────────────────

// Team size options offered by the registration wizard.
const (
	TeamSolo   = "1"
	TeamSmall  = "2-4"
	TeamMedium = "5-10"
	TeamLarge  = "10+"
)

// Experience level options offered by the registration wizard.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
	ExperienceMixed        = "mixed"
)

// Registration is one event sign-up. It is created when the last wizard
// step is submitted and never changes afterwards.
//
// The validate tags repeat the wizard rules so the record is checked once
// more right before it is written.
type Registration struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"    validate:"required"`
	Email        string    `json:"email"        validate:"required,address"`
	ProjectIdea  string    `json:"project_idea" validate:"required"`
	TechStack    string    `json:"tech_stack"   validate:"required"`
	TeamSize     string    `json:"team_size"    validate:"required,oneof=1 2-4 5-10 10+"`
	Experience   string    `json:"experience"   validate:"required,oneof=beginner intermediate advanced mixed"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Submission is a finished project posted to the public gallery.
// TwitterHandle is stored without the leading "@".
type Submission struct {
	ID            int64     `json:"id"`
	ProjectName   string    `json:"project_name"   validate:"required"`
	Description   string    `json:"description"    validate:"required"`
	BuilderName   string    `json:"builder_name"   validate:"required"`
	TwitterHandle string    `json:"twitter_handle" validate:"omitempty,handle,excludes=@"`
	ProjectURL    string    `json:"project_url"    validate:"required,weburl"`
	ImageURL      string    `json:"image_url"      validate:"omitempty,weburl"`
	SubmittedAt   time.Time `json:"submitted_at"   validate:"required"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Static site content
// ─────────────────────────────────────────────────────────────────────────────

type Sponsor struct {
	Name    string `json:"name"    yaml:"name"`
	Logo    string `json:"logo"    yaml:"logo"`
	Website string `json:"website" yaml:"website"`
}

// Judge is a member of the judging panel. IsHost marks the event host,
// who is listed with the judges.
type Judge struct {
	ID       string `json:"id"        yaml:"id"`
	Name     string `json:"name"      yaml:"name"`
	Title    string `json:"title"     yaml:"title"`
	ShortBio string `json:"short_bio" yaml:"short_bio"`
	Image    string `json:"image"     yaml:"image"`
	Twitter  string `json:"twitter"   yaml:"twitter"`
	IsHost   bool   `json:"is_host"   yaml:"is_host"`
	FullBio  string `json:"full_bio"  yaml:"full_bio"`
}

type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer"   yaml:"answer"`
}

type Prize struct {
	Name        string `json:"name"        yaml:"name"`
	Amount      string `json:"amount"      yaml:"amount"`
	Description string `json:"description" yaml:"description"`
}

// Idea is a suggested project for participants who need a starting point.
type Idea struct {
	ID                int      `json:"id"                 yaml:"id"`
	Title             string   `json:"title"              yaml:"title"`
	Description       string   `json:"description"        yaml:"description"`
	Difficulty        string   `json:"difficulty"         yaml:"difficulty"`
	Category          string   `json:"category"           yaml:"category"`
	TechStack         []string `json:"tech_stack"         yaml:"tech_stack"`
	PotentialFeatures []string `json:"potential_features" yaml:"potential_features"`
}
