// Package validation gatekeeps every mutation against the cross-entity
// invariants before it reaches storage. Each rule returns a structured
// *apperr.Error, or nil when the candidate is acceptable. Rules never write.
package validation

import (
	"log"
	"strings"
	"time"

	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/models"
	"gorm.io/gorm"
)

// ValidateTeamMembership checks a TeamMember candidate against the membership
// invariants: members must be students, a user holds at most one membership
// across all startups, a user leads at most one startup, and a startup has at
// most one leader. excludeID skips the row being updated; pass 0 for creates.
func ValidateTeamMembership(db *gorm.DB, user models.User, candidate models.TeamMember, excludeID uint) *apperr.Error {
	if user.Role.Name != models.RoleStudent {
		return apperr.Newf(apperr.CodeNotStudent,
			"Team members must be students, but %s has role %s", user.FullName, user.Role.Name)
	}

	isLeader := candidate.RoleInTeam == models.TeamLeaderRole

	if isLeader {
		var count int64
		if err := db.Model(&models.TeamMember{}).
			Where("user_id = ? AND role_in_team = ? AND id <> ?", candidate.UserID, models.TeamLeaderRole, excludeID).
			Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count > 0 {
			return apperr.Newf(apperr.CodeAlreadyTeamLeader,
				"%s is already a team leader for another startup", user.FullName)
		}
	}

	var existing models.TeamMember
	err := db.Preload("Startup").
		Where("user_id = ? AND id <> ?", candidate.UserID, excludeID).
		First(&existing).Error
	if err == nil {
		return apperr.Newf(apperr.CodeAlreadyTeamMember,
			"%s is already a member of %s", user.FullName, existing.Startup.Name)
	}
	if err != gorm.ErrRecordNotFound {
		return storeError(err)
	}

	if isLeader {
		var leader models.TeamMember
		err := db.Preload("User").
			Where("startup_id = ? AND role_in_team = ? AND id <> ?", candidate.StartupID, models.TeamLeaderRole, excludeID).
			First(&leader).Error
		if err == nil {
			return apperr.Newf(apperr.CodeStartupHasLeader,
				"startup already has a team leader: %s", leader.User.FullName)
		}
		if err != gorm.ErrRecordNotFound {
			return storeError(err)
		}
	}

	return nil
}

// ValidateEventWindow requires the end time to be strictly after the start.
func ValidateEventWindow(start, end time.Time) *apperr.Error {
	if !end.After(start) {
		return apperr.New(apperr.CodeInvalidTimeRange,
			"The event's end time must be after its start time")
	}
	return nil
}

// ValidateFileLinkage requires exactly one of the deliverable or application
// references to be set.
func ValidateFileLinkage(deliverableID, applicationID *uint) *apperr.Error {
	if (deliverableID == nil) == (applicationID == nil) {
		return apperr.New(apperr.CodeAmbiguousLinkage,
			"File metadata must be linked to exactly one of deliverable or application")
	}
	return nil
}

// ValidateResourceRequestQuantity compares the requested quantity against the
// resource's static total. Deliberately a point-in-time check: previously
// approved requests do not reduce the total here, only in the utilization
// analytics.
func ValidateResourceRequestQuantity(requested, available int) *apperr.Error {
	if requested > available {
		return apperr.New(apperr.CodeInsufficientResource,
			"Requested quantity exceeds available resources")
	}
	return nil
}

// ValidateUniqueVote rejects a second vote by the same user on the same
// application.
func ValidateUniqueVote(db *gorm.DB, applicationID, userID uint) *apperr.Error {
	var count int64
	if err := db.Model(&models.ApplicationVote{}).
		Where("application_id = ? AND user_id = ?", applicationID, userID).
		Count(&count).Error; err != nil {
		return storeError(err)
	}
	if count > 0 {
		return apperr.New(apperr.CodeDuplicateVoteOrScore,
			"User has already voted on this application")
	}
	return nil
}

// ValidateUniqueScore rejects a second score by the same user on the same
// application.
func ValidateUniqueScore(db *gorm.DB, applicationID, userID uint) *apperr.Error {
	var count int64
	if err := db.Model(&models.ApplicationScore{}).
		Where("application_id = ? AND user_id = ?", applicationID, userID).
		Count(&count).Error; err != nil {
		return storeError(err)
	}
	if count > 0 {
		return apperr.New(apperr.CodeDuplicateVoteOrScore,
			"User has already scored this application")
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation from
// the store. The pre-checks above are the fast path; a violation that slips
// through under concurrent writes is translated back to the matching
// validation error by the handlers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}

func storeError(err error) *apperr.Error {
	log.Printf("Database error during validation: %v", err)
	return apperr.New(apperr.CodeInternal, "Internal server error")
}
