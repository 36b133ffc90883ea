// Package lockclient provides a cluster-wide named lease lock backed by a
// database table. Multiple service instances sharing one schedule use it to
// elect a single worker per tick: whoever flips the row wins, everyone else
// skips. Expiry is enforced through the stored lock_until timestamp, so a
// crashed holder can never starve the fleet past the maximum hold time.
package lockclient

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lock is a held lease. Release is safe to call exactly once and never
// shortens the lease below the minimum hold time it was acquired with.
type Lock interface {
	Release() error
}

// Locker hands out named leases. Acquisition never blocks: callers either
// win the lease or are told to skip.
type Locker interface {
	// TryAcquire attempts to take the named lease. minHold is how long the
	// lease is kept even if released earlier, which stops instances with
	// slightly skewed clocks from both firing inside one logical window.
	// maxHold is the server-side expiry that reclaims the lease from a dead
	// holder. Returns (nil, false, nil) when another instance holds it.
	TryAcquire(name string, minHold, maxHold time.Duration) (Lock, bool, error)
}

type lockRow struct {
	Name      string    `gorm:"primaryKey;column:name"`
	LockUntil time.Time `gorm:"column:lock_until;not null"`
	LockedAt  time.Time `gorm:"column:locked_at;not null"`
	LockedBy  string    `gorm:"column:locked_by;not null"`
}

func (lockRow) TableName() string {
	return "shedlock"
}

// DBLocker implements Locker on a shared SQL database via gorm. The
// instance id ties a lease to its holder so a release can never clobber a
// lease re-acquired by someone else after expiry.
type DBLocker struct {
	db         *gorm.DB
	instanceID string
	now        func() time.Time
}

func NewDBLocker(db *gorm.DB) *DBLocker {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &DBLocker{
		db:         db,
		instanceID: fmt.Sprintf("%s-%s", hostname, uuid.NewString()),
		now:        time.Now,
	}
}

// Migrate creates the lock table. Production schemas come from the goose
// migrations; this exists for embedded test databases.
func (l *DBLocker) Migrate() error {
	return l.db.AutoMigrate(&lockRow{})
}

func (l *DBLocker) TryAcquire(name string, minHold, maxHold time.Duration) (Lock, bool, error) {
	now := l.now()
	until := now.Add(maxHold)

	// Take over a free or expired row. Matching on lock_until uses database
	// rows only, never in-process state, so every instance sees one truth.
	res := l.db.Model(&lockRow{}).
		Where("name = ? AND lock_until <= ?", name, now).
		Updates(map[string]interface{}{
			"lock_until": until,
			"locked_at":  now,
			"locked_by":  l.instanceID,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return l.newLease(name, now, minHold), true, nil
	}

	// No expired row: either the lease is held, or it was never created.
	err := l.db.Create(&lockRow{
		Name:      name,
		LockUntil: until,
		LockedAt:  now,
		LockedBy:  l.instanceID,
	}).Error
	if err == nil {
		return l.newLease(name, now, minHold), true, nil
	}

	// Insert lost to an existing row; treat a still-present row as "held".
	var count int64
	if countErr := l.db.Model(&lockRow{}).Where("name = ?", name).Count(&count).Error; countErr != nil {
		return nil, false, countErr
	}
	if count > 0 {
		return nil, false, nil
	}
	return nil, false, err
}

func (l *DBLocker) newLease(name string, acquiredAt time.Time, minHold time.Duration) Lock {
	return &dbLease{
		locker:     l,
		name:       name,
		acquiredAt: acquiredAt,
		minHold:    minHold,
	}
}

type dbLease struct {
	locker     *DBLocker
	name       string
	acquiredAt time.Time
	minHold    time.Duration
}

// Release ends the lease, but never before acquiredAt+minHold: the row's
// lock_until is floored to the minimum hold so a second instance firing
// inside the window still loses the acquire.
func (lease *dbLease) Release() error {
	now := lease.locker.now()
	until := lease.acquiredAt.Add(lease.minHold)
	if now.After(until) {
		until = now
	}

	return lease.locker.db.Model(&lockRow{}).
		Where("name = ? AND locked_by = ?", lease.name, lease.locker.instanceID).
		Update("lock_until", until).Error
}
