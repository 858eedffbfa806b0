package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// ParseDurationEnv parses an env value as time.Duration. It accepts
// "10s", "5m" and friends, or a bare number of seconds ("10" is 10s).
// Surrounding quotes are stripped.
func ParseDurationEnv(s string) (time.Duration, error) {
	s = unquote(strings.TrimSpace(s))
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseRedisURL extracts host:port, password and DB from a redis:// or rediss:// URL.
func ParseRedisURL(s string) (addr, password string, db int, err error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", "", 0, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return "", "", 0, fmt.Errorf("scheme must be redis or rediss, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", 0, errors.New("missing host in Redis URL")
	}
	if u.User != nil {
		password, _ = u.User.Password()
	}
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		db, err = strconv.Atoi(p)
		if err != nil {
			return "", "", 0, fmt.Errorf("redis db %q: %w", p, err)
		}
	}
	return u.Host, password, db, nil
}

// IsPGUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsPGUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	return errors.As(err, &pge) && pge.Code == pgUniqueViolation
}
