package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// idTimestamp is the second-resolution layout embedded in record IDs.
const idTimestamp = "20060102150405"

// NewCandidateID generates a candidate ID like CAN_20250901143015.
func NewCandidateID(now time.Time) string {
	return "CAN_" + now.Format(idTimestamp)
}

// NewJobID generates a job ID like JOB_20250901143015.
func NewJobID(now time.Time) string {
	return "JOB_" + now.Format(idTimestamp)
}

// NewUserID generates a user ID like USR_20250901143015_a1b2c3d4. The
// random suffix keeps concurrent registrations within the same second
// from colliding.
func NewUserID(now time.Time) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate user id suffix: %w", err)
	}
	return fmt.Sprintf("USR_%s_%s", now.Format(idTimestamp), hex.EncodeToString(suffix)), nil
}
