package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BookTestMode controls how booking attempts behave during testing.
type BookTestMode string

const (
	BookTestNone   BookTestMode = "none"
	BookTestInject BookTestMode = "inject"
	BookTestDryRun BookTestMode = "dry-run"
)

// Recipient is one notification target: a bot token plus the chat to post to.
// A recipient with an empty token or chat ID is treated as not configured.
type Recipient struct {
	Token  string
	ChatID string
	Prefix string
}

func (r Recipient) Configured() bool {
	return r.Token != "" && r.ChatID != ""
}

// Config is built once at startup and passed by value into each component.
// No component reads the environment directly.
type Config struct {
	Username string
	Password string
	BaseURL  string

	// Optional direct link to the calendar view; when empty the reader
	// clicks its way there from the landing page.
	CalendarURL string
	// Optional explicit selector for the availability container.
	CalendarSelector string

	Headless           bool
	AutoBook           bool
	TestPingWhenNoDays bool
	BookTestMode       BookTestMode

	StateFile        string
	StateDatabaseURL string

	NotifyAPIBase string
	Primary       Recipient
	Secondary     Recipient

	WatchInterval time.Duration
}

func FromEnv() (Config, error) {
	// Load .env if present; secrets may also come straight from the environment.
	_ = godotenv.Load()

	cfg := Config{
		Username:           strings.TrimSpace(os.Getenv("PASS_USER")),
		Password:           os.Getenv("PASS_PASS"),
		BaseURL:            strings.TrimSpace(os.Getenv("BASE_URL")),
		CalendarURL:        strings.TrimSpace(os.Getenv("CALENDAR_URL")),
		CalendarSelector:   strings.TrimSpace(os.Getenv("CALENDAR_SELECTOR")),
		Headless:           boolEnv("HEADLESS", true),
		AutoBook:           boolEnv("AUTO_BOOK", false),
		TestPingWhenNoDays: boolEnv("TEST_PING_WHEN_NO_DAYS", false),
		StateFile:          getenv("STATE_FILE", "state.json"),
		StateDatabaseURL:   strings.TrimSpace(os.Getenv("STATE_DATABASE_URL")),
		NotifyAPIBase:      getenv("NOTIFY_API_BASE", "https://api.telegram.org"),
		Primary: Recipient{
			Token:  strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
			ChatID: strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
			Prefix: os.Getenv("NOTIFY_PREFIX"),
		},
		Secondary: Recipient{
			Token:  strings.TrimSpace(os.Getenv("FRIEND_TELEGRAM_BOT_TOKEN")),
			ChatID: strings.TrimSpace(os.Getenv("FRIEND_TELEGRAM_CHAT_ID")),
			Prefix: os.Getenv("FRIEND_NOTIFY_PREFIX"),
		},
	}

	if cfg.Username == "" || cfg.Password == "" || cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("PASS_USER, PASS_PASS and BASE_URL are required")
	}

	mode := BookTestMode(getenv("BOOK_TEST_MODE", string(BookTestNone)))
	switch mode {
	case BookTestNone, BookTestInject, BookTestDryRun:
		cfg.BookTestMode = mode
	default:
		return Config{}, fmt.Errorf("invalid BOOK_TEST_MODE %q (want none, inject or dry-run)", mode)
	}

	interval, err := time.ParseDuration(getenv("WATCH_INTERVAL", "15m"))
	if err != nil || interval < time.Second {
		return Config{}, fmt.Errorf("invalid WATCH_INTERVAL")
	}
	cfg.WatchInterval = interval

	return cfg, nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func boolEnv(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}
