package starttime

import (
	"strings"
	"testing"
	"time"
)

func TestAtRendersUTC(t *testing.T) {
	now := time.Date(2024, time.October, 2, 7, 44, 20, 0, time.FixedZone("MDT", -6*60*60))

	instant := At(now, 40*time.Second)

	if instant != "Wed, 02 Oct 2024 13:45:00 +0000" {
		t.Logf("unexpected start instant %s", instant)
		t.FailNow()
	}
}

func TestComputeRoundTrips(t *testing.T) {
	instant, err := Compute(40)
	if err != nil {
		t.Logf("unexpected error: %v", err)
		t.FailNow()
	}

	parsed, err := time.Parse(Layout, instant)
	if err != nil {
		t.Logf("start instant %s does not parse with its own layout: %v", instant, err)
		t.FailNow()
	}

	if remaining := time.Until(parsed); remaining <= 0 || remaining > 40*time.Second {
		t.Logf("start instant %s not within the requested delay window", instant)
		t.FailNow()
	}

	if !strings.HasSuffix(instant, "+0000") {
		t.Logf("start instant %s not rendered in UTC", instant)
		t.FailNow()
	}
}

func TestComputeRejectsNegativeDelay(t *testing.T) {
	if _, err := Compute(-1); err == nil {
		t.Log("expected error for negative delay")
		t.FailNow()
	}
}

func TestComputeZeroDelay(t *testing.T) {
	if _, err := Compute(0); err != nil {
		t.Logf("zero delay should be allowed: %v", err)
		t.FailNow()
	}
}
