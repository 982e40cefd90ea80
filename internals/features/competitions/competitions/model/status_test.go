package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestClassifyStatus_Boundaries(t *testing.T) {
	today := date(2025, time.June, 15)

	tests := []struct {
		name     string
		deadline time.Time
		expected StatusCode
	}{
		{"4 hari lagi masih aktif", today.AddDate(0, 0, 4), StatusActive},
		{"10 hari lagi aktif", today.AddDate(0, 0, 10), StatusActive},
		{"tepat 3 hari lagi segera berakhir", today.AddDate(0, 0, 3), StatusClosingSoon},
		{"besok segera berakhir", today.AddDate(0, 0, 1), StatusClosingSoon},
		{"deadline hari ini segera berakhir", today, StatusClosingSoon},
		{"lewat 1 hari masa tenggang", today.AddDate(0, 0, -1), StatusGracePeriod},
		{"lewat 2 hari masih masa tenggang", today.AddDate(0, 0, -2), StatusGracePeriod},
		{"lewat 3 hari berakhir", today.AddDate(0, 0, -3), StatusExpired},
		{"lewat sebulan berakhir", today.AddDate(0, -1, 0), StatusExpired},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ClassifyStatus(test.deadline, today)
			if got.Code != test.expected {
				t.Errorf("ClassifyStatus(%s, %s) = %s, want %s",
					test.deadline.Format(time.DateOnly), today.Format(time.DateOnly), got.Code, test.expected)
			}
		})
	}
}

func TestClassifyStatus_Labels(t *testing.T) {
	today := date(2025, time.June, 15)

	tests := []struct {
		deadline time.Time
		label    string
	}{
		{today.AddDate(0, 0, 10), "Aktif"},
		{today.AddDate(0, 0, 2), "Segera Berakhir"},
		{today.AddDate(0, 0, -1), "Masa Tenggang"},
		{today.AddDate(0, 0, -5), "Berakhir"},
	}

	for _, test := range tests {
		got := ClassifyStatus(test.deadline, today)
		if got.Label != test.label {
			t.Errorf("label untuk deadline %s = %q, want %q",
				test.deadline.Format(time.DateOnly), got.Label, test.label)
		}
	}
}

func TestClassifyStatus_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.June, 15, 23, 45, 0, 0, time.Local)
	deadline := time.Date(2025, time.June, 15, 1, 30, 0, 0, time.Local)

	got := ClassifyStatus(deadline, today)
	if got.Code != StatusClosingSoon {
		t.Errorf("deadline hari ini dengan jam berbeda = %s, want %s", got.Code, StatusClosingSoon)
	}
}

// Kolom date dari driver Postgres ter-decode sebagai tengah malam UTC,
// sedangkan "hari ini" memakai zona server. Selisih kalender harus
// tetap benar walau kedua operand berzona beda.
func TestClassifyStatus_MixedZoneOperands(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)

	// 3 hari kalender lagi → harus CLOSING_SOON, bukan ACTIVE
	today := time.Date(2026, time.August, 31, 10, 0, 0, 0, wib)
	deadline := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)

	if got := DaysUntil(deadline, today); got != 3 {
		t.Errorf("DaysUntil lintas zona = %d, want 3", got)
	}
	if got := ClassifyStatus(deadline, today); got.Code != StatusClosingSoon {
		t.Errorf("ClassifyStatus lintas zona = %s, want %s", got.Code, StatusClosingSoon)
	}
}

func TestIsVisible_MixedZoneOperands(t *testing.T) {
	// zona barat UTC: offset negatif tidak boleh memajukan batas tenggang
	edt := time.FixedZone("EDT", -4*3600)
	deadline := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	onGrace := time.Date(2026, time.September, 3, 22, 0, 0, 0, edt)
	if !IsVisible(deadline, onGrace) {
		t.Error("deadline+2 hari harus masih visible walau today berzona UTC-4")
	}

	pastGrace := time.Date(2026, time.September, 4, 1, 0, 0, 0, edt)
	if IsVisible(deadline, pastGrace) {
		t.Error("deadline+3 hari harus sudah hilang")
	}
}

func TestIsVisible_GraceBoundary(t *testing.T) {
	deadline := date(2025, time.June, 10)

	tests := []struct {
		name    string
		today   time.Time
		visible bool
	}{
		{"sebelum deadline", deadline.AddDate(0, 0, -5), true},
		{"hari deadline", deadline, true},
		{"deadline + 1 hari", deadline.AddDate(0, 0, 1), true},
		{"deadline + 2 hari masih tampil", deadline.AddDate(0, 0, 2), true},
		{"deadline + 3 hari sudah hilang", deadline.AddDate(0, 0, 3), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsVisible(deadline, test.today); got != test.visible {
				t.Errorf("IsVisible(%s, %s) = %v, want %v",
					deadline.Format(time.DateOnly), test.today.Format(time.DateOnly), got, test.visible)
			}
		})
	}
}

func TestStatusEngine_Pure(t *testing.T) {
	deadline := date(2025, time.July, 1)
	today := date(2025, time.June, 29)

	first := ClassifyStatus(deadline, today)
	second := ClassifyStatus(deadline, today)
	if first != second {
		t.Errorf("ClassifyStatus tidak deterministik: %+v vs %+v", first, second)
	}

	if IsVisible(deadline, today) != IsVisible(deadline, today) {
		t.Error("IsVisible tidak deterministik")
	}
}

func TestDaysUntil(t *testing.T) {
	today := date(2025, time.June, 15)

	tests := []struct {
		deadline time.Time
		expected int
	}{
		{today, 0},
		{today.AddDate(0, 0, 3), 3},
		{today.AddDate(0, 0, -2), -2},
		{today.AddDate(0, 0, 30), 30},
	}

	for _, test := range tests {
		if got := DaysUntil(test.deadline, today); got != test.expected {
			t.Errorf("DaysUntil(%s, %s) = %d, want %d",
				test.deadline.Format(time.DateOnly), today.Format(time.DateOnly), got, test.expected)
		}
	}
}
