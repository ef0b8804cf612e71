package loyalty

import (
	"context"
	"errors"
	"testing"

	"github.com/vuminhngo/techstore-backend/pkg/enums"
)

func TestResolveTier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		points int
		want   enums.Tier
	}{
		{"zero balance", 0, enums.TierMember},
		{"just below silver", 999, enums.TierMember},
		{"silver boundary", 1000, enums.TierSilver},
		{"mid silver", 4999, enums.TierSilver},
		{"gold boundary", 5000, enums.TierGold},
		{"just below diamond", 9999, enums.TierGold},
		{"diamond boundary", 10000, enums.TierDiamond},
		{"far above diamond", 250000, enums.TierDiamond},
		{"negative balance", -50, enums.TierMember},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveTier(tc.points, DefaultThresholds); got != tc.want {
				t.Fatalf("ResolveTier(%d) = %q, want %q", tc.points, got, tc.want)
			}
		})
	}
}

func TestResolveTierCustomThresholds(t *testing.T) {
	t.Parallel()

	custom := Thresholds{Silver: 10, Gold: 20, Diamond: 30}
	if got := ResolveTier(25, custom); got != enums.TierGold {
		t.Fatalf("expected gold with custom thresholds, got %q", got)
	}
}

type stubSettings struct {
	values map[string]string
	err    error
}

var errSettingMissing = errors.New("redis: nil")

func (s *stubSettings) GetSetting(_ context.Context, name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	v, ok := s.values[name]
	if !ok {
		return "", errSettingMissing
	}
	return v, nil
}

func (s *stubSettings) SetSetting(_ context.Context, name, value string) error {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[name] = value
	return nil
}

func TestThresholdSourceReadsOverrides(t *testing.T) {
	t.Parallel()

	src := NewThresholdSource(&stubSettings{values: map[string]string{
		SettingSilver:  "500",
		SettingGold:    "2500",
		SettingDiamond: "9000",
	}}, nil)

	got := src.Current(context.Background())
	want := Thresholds{Silver: 500, Gold: 2500, Diamond: 9000}
	if got != want {
		t.Fatalf("Current() = %+v, want %+v", got, want)
	}
}

func TestThresholdSourceFallsBackPerEntry(t *testing.T) {
	t.Parallel()

	src := NewThresholdSource(&stubSettings{values: map[string]string{
		SettingGold: "not-a-number",
	}}, nil)

	got := src.Current(context.Background())
	if got != DefaultThresholds {
		t.Fatalf("Current() = %+v, want defaults %+v", got, DefaultThresholds)
	}
}

func TestThresholdSourceStoreFailureUsesDefaults(t *testing.T) {
	t.Parallel()

	src := NewThresholdSource(&stubSettings{err: errors.New("connection refused")}, nil)
	if got := src.Current(context.Background()); got != DefaultThresholds {
		t.Fatalf("Current() = %+v, want defaults %+v", got, DefaultThresholds)
	}
}
