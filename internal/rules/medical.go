package rules

import (
	"strings"

	"leavesync/internal/domain"
	ruleserrors "leavesync/internal/rules/errors"

	"github.com/shopspring/decimal"
)

const MedicalProofThresholdDays = 3

// CheckMedicalProof requires a proof URL for medical leave longer than the threshold.
func CheckMedicalProof(leaveType domain.LeaveType, totalDays decimal.Decimal, proofURL string) error {
	if leaveType != domain.LeaveMedical {
		return nil
	}
	if totalDays.GreaterThan(decimal.NewFromInt(MedicalProofThresholdDays)) && strings.TrimSpace(proofURL) == "" {
		return ruleserrors.ErrMedicalProofRequired
	}
	return nil
}
