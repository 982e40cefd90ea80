package model

import (
	"math"
	"time"
)

// Status lifecycle lomba relatif terhadap deadline-nya.
type StatusCode string

const (
	StatusExpired     StatusCode = "EXPIRED"
	StatusGracePeriod StatusCode = "GRACE_PERIOD"
	StatusClosingSoon StatusCode = "CLOSING_SOON"
	StatusActive      StatusCode = "ACTIVE"
)

type Status struct {
	Code  StatusCode `json:"code"`
	Label string     `json:"label"`
}

var (
	statusExpired     = Status{StatusExpired, "Berakhir"}
	statusGracePeriod = Status{StatusGracePeriod, "Masa Tenggang"}
	statusClosingSoon = Status{StatusClosingSoon, "Segera Berakhir"}
	statusActive      = Status{StatusActive, "Aktif"}
)

// atMidnight membaca komponen tanggal di zona nilainya sendiri, lalu
// menjangkarkannya ke tengah malam UTC. Jangkar tunggal ini penting:
// kolom date ter-decode driver sebagai tengah malam UTC sedangkan
// time.Now() berzona server, dan selisihnya harus tetap kelipatan
// bulat 24 jam (UTC juga bebas DST).
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil menghitung selisih hari kalender deadline-today,
// ceil seperti Math.ceil(diffMs / 86400000).
func DaysUntil(deadline, today time.Time) int {
	d := atMidnight(deadline)
	n := atMidnight(today)
	return int(math.Ceil(d.Sub(n).Hours() / 24))
}

// ClassifyStatus mengklasifikasikan status lomba:
//   - diffDays < -2          → EXPIRED ("Berakhir")
//   - -2 ≤ diffDays < 0      → GRACE_PERIOD ("Masa Tenggang")
//   - 0 ≤ diffDays ≤ 3       → CLOSING_SOON ("Segera Berakhir")
//   - diffDays > 3           → ACTIVE ("Aktif")
//
// Deadline hari ini berarti CLOSING_SOON, bukan EXPIRED.
func ClassifyStatus(deadline, today time.Time) Status {
	diffDays := DaysUntil(deadline, today)
	switch {
	case diffDays < -2:
		return statusExpired
	case diffDays < 0:
		return statusGracePeriod
	case diffDays <= 3:
		return statusClosingSoon
	default:
		return statusActive
	}
}

// IsVisible menentukan apakah lomba masih tampil di listing publik:
// masa tenggang = deadline + 2 hari, inklusif. Threshold ini sengaja
// berdiri sendiri, TIDAK diturunkan dari ClassifyStatus.
func IsVisible(deadline, today time.Time) bool {
	graceDeadline := atMidnight(deadline).AddDate(0, 0, 2)
	return !atMidnight(today).After(graceDeadline)
}
