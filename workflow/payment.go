package workflow

import (
	"fmt"
	"math"
	"strings"
)

// Service and construction types carried on applications.
const (
	ServiceFirePrevention      = "fire_prevention"
	ServiceSafetyAudit         = "safety_audit"
	ServiceInspection          = "inspection"
	ServiceEmergencyFireSafety = "emergency_fire_safety"
	ServiceOther               = "other"

	ConstructionResidential = "residential"
	ConstructionCommercial  = "commercial"
	ConstructionIndustrial  = "industrial"
	ConstructionBuilding    = "building"
)

var paymentBases = map[string]float64{
	ServiceFirePrevention: 1500,
	ServiceSafetyAudit:    2000,
	ServiceInspection:     1200,
	// Emergency callouts are billed at the fire prevention base.
	ServiceEmergencyFireSafety: 1500,
	ServiceOther:               1000,
}

var constructionMultipliers = map[string]float64{
	ConstructionResidential: 1.0,
	ConstructionCommercial:  1.5,
	ConstructionIndustrial:  2.0,
	ConstructionBuilding:    1.2,
}

// SuggestedPayment computes the advisory fee for a service/construction
// pair, rounded to the nearest currency unit. It never assigns payment;
// officers may override the figure when calling AssignPayment.
func SuggestedPayment(serviceType, constructionType string) (int, error) {
	base, ok := paymentBases[normalizeType(serviceType)]
	if !ok {
		return 0, fmt.Errorf("unknown service type: %s", serviceType)
	}

	multiplier, ok := constructionMultipliers[normalizeType(constructionType)]
	if !ok {
		return 0, fmt.Errorf("unknown construction type: %s", constructionType)
	}

	return int(math.Round(base * multiplier)), nil
}

func normalizeType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
