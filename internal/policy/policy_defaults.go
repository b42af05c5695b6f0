package policy

import (
	"github.com/shopspring/decimal"

	"cdbl-lms/internal/domain"
)

// Defaults is the rule set seeded into an empty leave_policies table.
func Defaults() []LeavePolicy {
	d := decimal.NewFromInt
	return []LeavePolicy{
		{
			LeaveType:            string(domain.LeaveEarned),
			NoticeDaysRequired:   15,
			CarryForwardLimit:    d(60),
			AnnualCap:            d(24),
			AccrualPerMonth:      d(2),
			CarryForwardEligible: true,
			SkipStages:           skipStagesJSON(domain.RoleCEO),
			RecallCreditsBalance: true,
			CountsAsDuty:         true,
		},
		{
			LeaveType:            string(domain.LeaveCasual),
			MaxConsecutiveDays:   3,
			AnnualCap:            d(10),
			WorkingDaysOnly:      true,
			SkipStages:           skipStagesJSON(domain.RoleHRHead, domain.RoleCEO),
			RecallCreditsBalance: true,
			CountsAsDuty:         true,
		},
		{
			LeaveType:            string(domain.LeaveMedical),
			NoticeExempt:         true,
			CertificateAfterDays: 3,
			AnnualCap:            d(14),
			SkipStages:           skipStagesJSON(domain.RoleCEO),
			RecallCreditsBalance: true,
			CountsAsDuty:         true,
		},
		{
			LeaveType:            string(domain.LeaveExtraordinary),
			NoticeDaysRequired:   30,
			Uncapped:             true,
			SkipStages:           skipStagesJSON(),
			RecallCreditsBalance: true,
		},
		{
			LeaveType:            string(domain.LeaveMaternity),
			NoticeDaysRequired:   30,
			AnnualCap:            d(112),
			SkipStages:           skipStagesJSON(domain.RoleCEO),
			RecallCreditsBalance: true,
			CountsAsDuty:         true,
		},
		{
			LeaveType:            string(domain.LeavePaternity),
			NoticeDaysRequired:   7,
			AnnualCap:            d(7),
			SkipStages:           skipStagesJSON(domain.RoleCEO),
			RecallCreditsBalance: true,
			CountsAsDuty:         true,
		},
		{
			LeaveType:            string(domain.LeaveStudy),
			NoticeDaysRequired:   30,
			Uncapped:             true,
			RetirementBufferDays: 365,
			SkipStages:           skipStagesJSON(),
			RecallCreditsBalance: true,
			CountsAsDuty:         true,
		},
	}
}
