package workflow

import "testing"

func TestSuggestedPayment(t *testing.T) {
	cases := []struct {
		service      string
		construction string
		want         int
	}{
		{ServiceFirePrevention, ConstructionResidential, 1500},
		{ServiceFirePrevention, ConstructionCommercial, 2250},
		{ServiceFirePrevention, ConstructionBuilding, 1800},
		{ServiceSafetyAudit, ConstructionIndustrial, 4000},
		{ServiceInspection, ConstructionCommercial, 1800},
		{ServiceInspection, ConstructionBuilding, 1440},
		{ServiceEmergencyFireSafety, ConstructionResidential, 1500},
		{ServiceOther, ConstructionIndustrial, 2000},
	}

	for _, tc := range cases {
		got, err := SuggestedPayment(tc.service, tc.construction)
		if err != nil {
			t.Fatalf("SuggestedPayment(%s, %s) returned error: %v", tc.service, tc.construction, err)
		}
		if got != tc.want {
			t.Fatalf("SuggestedPayment(%s, %s) = %d, want %d", tc.service, tc.construction, got, tc.want)
		}
	}
}

func TestSuggestedPaymentNormalizesInput(t *testing.T) {
	got, err := SuggestedPayment(" Fire_Prevention ", "COMMERCIAL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2250 {
		t.Fatalf("expected 2250, got %d", got)
	}
}

func TestSuggestedPaymentRejectsUnknownTypes(t *testing.T) {
	if _, err := SuggestedPayment("demolition", ConstructionResidential); err == nil {
		t.Fatalf("expected error for unknown service type")
	}
	if _, err := SuggestedPayment(ServiceFirePrevention, "floating"); err == nil {
		t.Fatalf("expected error for unknown construction type")
	}
}
