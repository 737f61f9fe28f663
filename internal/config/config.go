// Package config provides configuration loading, validation, and management
// for the Empleo bot. It reads a YAML file, applies BOT_* environment
// overrides and default values, and validates the result.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration for all components of the bot.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Limits    LimitsConfig    `mapstructure:"limits"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Retention RetentionConfig `mapstructure:"retention"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Commands  CommandsConfig  `mapstructure:"commands"`
}

// LoggerConfig controls the slog handler.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the broadcast allow-list.
type TelegramConfig struct {
	Token      string  `mapstructure:"token"       validate:"required"`
	AdminIDs   []int64 `mapstructure:"admin_ids"   validate:"dive,gt=0"`
	WelcomeURL string  `mapstructure:"welcome_url" validate:"omitempty,url"`

	// BotInfo is filled at runtime from getMe.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LimitsConfig configures the per-user rate window and the content filter.
type LimitsConfig struct {
	Window         time.Duration `mapstructure:"window"          validate:"min=1s"`
	MaxMessages    int           `mapstructure:"max_messages"    validate:"gt=0"`
	ForbiddenTerms []string      `mapstructure:"forbidden_terms" validate:"dive,required"`
}

// ListingConfig configures pagination of offers and candidates.
type ListingConfig struct {
	PageSize int `mapstructure:"page_size" validate:"gt=0,lte=20"`
}

// RetentionConfig configures the retention sweep.
type RetentionConfig struct {
	MaxAgeDays   int  `mapstructure:"max_age_days"   validate:"gt=0"`
	SweepOnStart bool `mapstructure:"sweep_on_start"`
}

// BroadcastConfig configures privileged broadcasts.
type BroadcastConfig struct {
	Delay      time.Duration `mapstructure:"delay"       validate:"min=0"`
	PendingTTL time.Duration `mapstructure:"pending_ttl" validate:"min=1m"`
}

// HTTPConfig configures the health/stats endpoint. An empty address disables it.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task. Schedule is a six-field cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every user-facing text.
type MessagesConfig struct {
	Welcome string `mapstructure:"welcome" validate:"required"`
	Help    string `mapstructure:"help"    validate:"required"`
	Menu    string `mapstructure:"menu"    validate:"required"`
	NoMatch string `mapstructure:"no_match"`

	ContentRejected string `mapstructure:"content_rejected" validate:"required"`
	RateLimited     string `mapstructure:"rate_limited"     validate:"required"`
	StoreError      string `mapstructure:"store_error"      validate:"required"`
	NotAuthorized   string `mapstructure:"not_authorized"   validate:"required"`

	OfferTitlePrompt       string `mapstructure:"offer_title_prompt"       validate:"required"`
	OfferCompanyPrompt     string `mapstructure:"offer_company_prompt"     validate:"required"`
	OfferSalaryPrompt      string `mapstructure:"offer_salary_prompt"      validate:"required"`
	OfferDescriptionPrompt string `mapstructure:"offer_description_prompt" validate:"required"`
	OfferContactPrompt     string `mapstructure:"offer_contact_prompt"     validate:"required"`
	OfferPublished         string `mapstructure:"offer_published"          validate:"required"`
	OfferFailed            string `mapstructure:"offer_failed"             validate:"required"`
	OfferCancelled         string `mapstructure:"offer_cancelled"          validate:"required"`

	CandidateNamePrompt      string `mapstructure:"candidate_name_prompt"      validate:"required"`
	CandidateJobTypePrompt   string `mapstructure:"candidate_job_type_prompt"  validate:"required"`
	CandidateEducationPrompt string `mapstructure:"candidate_education_prompt" validate:"required"`
	CandidateContactPrompt   string `mapstructure:"candidate_contact_prompt"   validate:"required"`
	CandidateRegistered      string `mapstructure:"candidate_registered"       validate:"required"`
	CandidateFailed          string `mapstructure:"candidate_failed"           validate:"required"`
	CandidateCancelled       string `mapstructure:"candidate_cancelled"        validate:"required"`

	FormSuperseded  string `mapstructure:"form_superseded"   validate:"required"`
	NothingToCancel string `mapstructure:"nothing_to_cancel" validate:"required"`

	NoOffers          string `mapstructure:"no_offers"           validate:"required"`
	MoreOffers        string `mapstructure:"more_offers"         validate:"required"`
	AllOffersSeen     string `mapstructure:"all_offers_seen"     validate:"required"`
	NoCandidates      string `mapstructure:"no_candidates"       validate:"required"`
	MoreCandidates    string `mapstructure:"more_candidates"     validate:"required"`
	AllCandidatesSeen string `mapstructure:"all_candidates_seen" validate:"required"`
	ShowMoreButton    string `mapstructure:"show_more_button"    validate:"required"`

	BroadcastUsage     string `mapstructure:"broadcast_usage"     validate:"required"`
	BroadcastPreview   string `mapstructure:"broadcast_preview"   validate:"required"`
	BroadcastConfirm   string `mapstructure:"broadcast_confirm"   validate:"required"`
	BroadcastAbort     string `mapstructure:"broadcast_abort"     validate:"required"`
	BroadcastExpired   string `mapstructure:"broadcast_expired"   validate:"required"`
	BroadcastCancelled string `mapstructure:"broadcast_cancelled" validate:"required"`
	BroadcastStarted   string `mapstructure:"broadcast_started"   validate:"required"`
	BroadcastSummary   string `mapstructure:"broadcast_summary"   validate:"required"`

	NotificationsOn  string `mapstructure:"notifications_on"  validate:"required"`
	NotificationsOff string `mapstructure:"notifications_off" validate:"required"`

	MenuOffers     string `mapstructure:"menu_offers"     validate:"required"`
	MenuOffer      string `mapstructure:"menu_offer"      validate:"required"`
	MenuCandidate  string `mapstructure:"menu_candidate"  validate:"required"`
	MenuCandidates string `mapstructure:"menu_candidates" validate:"required"`
	MenuHelp       string `mapstructure:"menu_help"       validate:"required"`
}

// CommandsConfig holds the descriptions published with setMyCommands.
type CommandsConfig struct {
	Start         string `mapstructure:"start"`
	Menu          string `mapstructure:"menu"`
	Offer         string `mapstructure:"offer"`
	Search        string `mapstructure:"search"`
	Candidate     string `mapstructure:"candidate"`
	Candidates    string `mapstructure:"candidates"`
	Cancel        string `mapstructure:"cancel"`
	Notifications string `mapstructure:"notifications"`
	Help          string `mapstructure:"help"`
}
