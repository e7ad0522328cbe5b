package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/crazypanel/lookupbot/internal/domain"
	"github.com/crazypanel/lookupbot/internal/ports"
)

const (
	configName            = "config"
	configType            = "toml"
	subscriptionsPathKey  = "subscriptions.path"
	subscriptionsFileMode = 0o600
	subscriptionsDirMode  = 0o700
	subscriptionsDir      = ".lookupbot"
	subscriptionsFile     = "subscriptions.toml"
	tempFilePattern       = ".subscriptions-*.toml.tmp"

	dateLayout = "2006-01-02"
)

// errStoreCorrupt marks content that cannot be trusted: unparseable TOML or
// an unparseable timestamp field. Both are routed to quarantine; a zeroed
// field would silently change entitlement (a blank expiry reads as "never").
var errStoreCorrupt = errors.New("subscriptions file corrupt")

type Repository struct {
	subscriptionsPath string
	mu                *sync.RWMutex
	logger            zerolog.Logger
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SubscriptionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, logger zerolog.Logger) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, subscriptionsDir, subscriptionsFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, subscriptionsDir))
	cfg.SetDefault(subscriptionsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	subscriptionsPath := cfg.GetString(subscriptionsPathKey)
	if subscriptionsPath == "" {
		return nil, errors.New("subscriptions path is empty")
	}
	subscriptionsPath, err = normalizePath(subscriptionsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{
		subscriptionsPath: subscriptionsPath,
		mu:                lockForPath(subscriptionsPath),
		logger:            logger,
	}, nil
}

func (r *Repository) Save(ctx context.Context, record domain.SubscriptionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readRecords()
	if errors.Is(err, errStoreCorrupt) {
		if err := r.quarantineLocked(err); err != nil {
			return err
		}
		records = nil
	} else if err != nil {
		return err
	}

	updated := false
	for i := range records {
		if records[i].UserID == record.UserID {
			records[i] = record
			updated = true
			break
		}
	}

	if !updated {
		records = append(records, record)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeRecords(records)
}

func (r *Repository) GetByUserID(ctx context.Context, id domain.UserID) (domain.SubscriptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SubscriptionRecord{}, err
	}

	records, err := r.loadRecords()
	if err != nil {
		return domain.SubscriptionRecord{}, err
	}

	for _, record := range records {
		if record.UserID == id {
			return record, nil
		}
	}

	return domain.SubscriptionRecord{}, domain.ErrSubscriptionNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.SubscriptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.loadRecords()
}

// loadRecords reads under the shared lock; on corruption it upgrades to the
// exclusive lock for quarantine. Quarantine renames the store file, so it
// must never run while other readers hold the lock.
func (r *Repository) loadRecords() ([]domain.SubscriptionRecord, error) {
	r.mu.RLock()
	records, err := r.readRecords()
	r.mu.RUnlock()

	if err == nil {
		return records, nil
	}
	if !errors.Is(err, errStoreCorrupt) {
		return nil, err
	}

	return r.recoverCorrupt()
}

// recoverCorrupt re-reads under the write lock before quarantining: a
// concurrent reader may have already moved the file aside, in which case the
// re-read observes the recovered (empty or rewritten) store.
func (r *Repository) recoverCorrupt() ([]domain.SubscriptionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readRecords()
	if err == nil {
		return records, nil
	}
	if !errors.Is(err, errStoreCorrupt) {
		return nil, err
	}

	if err := r.quarantineLocked(err); err != nil {
		return nil, err
	}

	return nil, nil
}

func (r *Repository) readRecords() ([]domain.SubscriptionRecord, error) {
	data, err := os.ReadFile(r.subscriptionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read subscriptions file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", errStoreCorrupt, err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	records := make([]domain.SubscriptionRecord, 0, len(file.Users))
	for _, entry := range file.Users {
		record, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errStoreCorrupt, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// quarantineLocked moves an unreadable subscriptions file aside so the store
// restarts empty. Destroying the bytes silently is forbidden; the admin needs
// the quarantined copy to recover records by hand. Callers must hold the
// write lock.
func (r *Repository) quarantineLocked(cause error) error {
	quarantinePath := fmt.Sprintf("%s.corrupt-%d", r.subscriptionsPath, time.Now().Unix())

	if err := os.Rename(r.subscriptionsPath, quarantinePath); err != nil {
		return fmt.Errorf("quarantine corrupt subscriptions file: %w", errors.Join(cause, err))
	}

	r.logger.Error().
		Err(cause).
		Str("path", r.subscriptionsPath).
		Str("quarantine", quarantinePath).
		Msg("subscriptions file corrupt, quarantined and starting empty")

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve subscriptions path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeRecords(records []domain.SubscriptionRecord) error {
	file := fileSchema{
		Version: currentSchemaVersion,
		Users:   make([]subscriptionSchema, 0, len(records)),
	}
	for _, record := range records {
		file.Users = append(file.Users, toSchema(record))
	}

	if err := os.MkdirAll(filepath.Dir(r.subscriptionsPath), subscriptionsDirMode); err != nil {
		return fmt.Errorf("create subscriptions directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode subscriptions file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.subscriptionsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp subscriptions file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp subscriptions file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp subscriptions file: %w", err)
	}

	if err := tempFile.Chmod(subscriptionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp subscriptions file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp subscriptions file: %w", err)
	}

	if err := os.Rename(tempName, r.subscriptionsPath); err != nil {
		return fmt.Errorf("replace subscriptions file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.subscriptionsPath, subscriptionsFileMode); err != nil {
		return fmt.Errorf("chmod subscriptions file: %w", err)
	}

	return nil
}

func toSchema(record domain.SubscriptionRecord) subscriptionSchema {
	return subscriptionSchema{
		UserID:        string(record.UserID),
		Username:      record.Username,
		FirstName:     record.FirstName,
		Plan:          string(record.Plan),
		PaymentAmount: record.PaymentAmount,
		CreatedDate:   formatTime(record.CreatedAt),
		Expires:       formatTime(record.Expires),
		SearchesUsed:  record.SearchesUsed,
		LastReset:     formatDate(record.LastReset),
		TotalSearches: record.TotalSearches,
		Status:        string(record.Status),
	}
}

func fromSchema(entry subscriptionSchema) (domain.SubscriptionRecord, error) {
	createdAt, err := parseTime(entry.CreatedDate)
	if err != nil {
		return domain.SubscriptionRecord{}, fmt.Errorf("user %q created_date: %w", entry.UserID, err)
	}

	expires, err := parseTime(entry.Expires)
	if err != nil {
		return domain.SubscriptionRecord{}, fmt.Errorf("user %q expires: %w", entry.UserID, err)
	}

	lastReset, err := parseDate(entry.LastReset)
	if err != nil {
		return domain.SubscriptionRecord{}, fmt.Errorf("user %q last_reset: %w", entry.UserID, err)
	}

	return domain.SubscriptionRecord{
		UserID:        domain.UserID(entry.UserID),
		Username:      entry.Username,
		FirstName:     entry.FirstName,
		Plan:          domain.PlanID(entry.Plan),
		PaymentAmount: entry.PaymentAmount,
		CreatedAt:     createdAt,
		Expires:       expires,
		SearchesUsed:  entry.SearchesUsed,
		LastReset:     lastReset,
		TotalSearches: entry.TotalSearches,
		Status:        domain.SubscriptionStatus(entry.Status),
	}, nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", raw, err)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", raw, err)
	}

	return parsed, nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(dateLayout)
}
