package domain

import "math"

const (
	// BaseProfileCompletion is what every freshly registered account starts with
	BaseProfileCompletion = 30
	profileFieldPoints    = 10
	maxProfileCompletion  = 100
)

// ComputeProfileCompletion scores the stored profile: the base score plus
// ten points per filled optional field, capped at 100.
func ComputeProfileCompletion(u *User) int {
	score := BaseProfileCompletion
	filled := []bool{
		u.Phone != "",
		len(u.Industry) > 0,
		len(u.Certifications) > 0,
		u.ManufacturingCapacity != "",
		u.Location != "",
		u.Website != "",
	}
	for _, ok := range filled {
		if ok {
			score += profileFieldPoints
		}
	}
	if score > maxProfileCompletion {
		return maxProfileCompletion
	}
	return score
}

// ExecutionHealthScore is the rounded share of on-track programs, 100 when there are none
func ExecutionHealthScore(onTrack, total int64) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(onTrack) / float64(total)))
}

// TimelineAdherence buckets an execution health score
func TimelineAdherence(score int) HealthStatus {
	switch {
	case score > 80:
		return HealthOnTrack
	case score > 60:
		return HealthAttention
	default:
		return HealthAtRisk
	}
}
