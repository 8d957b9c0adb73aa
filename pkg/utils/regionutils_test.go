package utils

import "testing"

func TestDescribeRegion(t *testing.T) {
	if got := DescribeRegion("ap-northeast-2"); got != "ap-northeast-2 (Asia Pacific (Seoul))" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := DescribeRegion("local-test-1"); got != "local-test-1" {
		t.Fatalf("expected bare code for unknown region, got %q", got)
	}
}

func TestIsValidRegion(t *testing.T) {
	for _, region := range []string{GetDefaultRegion(), "ap-southeast-3", "ca-west-1", "il-central-1", "us-gov-west-1", "us-isob-east-1"} {
		if !IsValidRegion(region) {
			t.Fatalf("expected %q to be valid", region)
		}
	}
	for _, region := range []string{"", "mars-north-1", "US-EAST-1", "us-east", "us-east-1a"} {
		if IsValidRegion(region) {
			t.Fatalf("expected %q to be rejected", region)
		}
	}
}
